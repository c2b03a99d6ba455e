package transcript

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/jgbaldwinbrown/csvh"

	"github.com/ntm/grexome-TIMC-Secondary-sub002/internal/gtf"
)

// Tag literals carried in the GTF attribute column.
const (
	TagCanonical = "Ensembl_canonical"
	TagMANE      = "MANE_Select"
)

// Selection decides which transcripts a builder keeps. Exactly one of the
// two modes is active per invocation: an explicit membership set, or a tag
// test against the raw attribute column.
type Selection struct {
	members map[string]bool
	tag     string
}

// SelectByTag returns a tag-mode selection. The name must be "canonical" or
// "mane"; anything else is a configuration error.
func SelectByTag(name string) (Selection, error) {
	switch name {
	case "canonical":
		return Selection{tag: TagCanonical}, nil
	case "mane":
		return Selection{tag: TagMANE}, nil
	}
	return Selection{}, fmt.Errorf("unknown selection %q: must be canonical or mane", name)
}

// SelectMembers returns a membership-mode selection over a set of
// transcript IDs.
func SelectMembers(ids map[string]bool) Selection {
	return Selection{members: ids}
}

// LoadMembers reads a membership-mode selection from a side file holding one
// transcript ID per line. Gzipped files are handled transparently.
func LoadMembers(path string) (Selection, error) {
	r, err := csvh.OpenMaybeGz(path)
	if err != nil {
		return Selection{}, fmt.Errorf("open transcripts file: %w", err)
	}
	defer r.Close()

	ids := make(map[string]bool)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}
		ids[stripVersion(id)] = true
	}
	if err := scanner.Err(); err != nil {
		return Selection{}, fmt.Errorf("scan transcripts file: %w", err)
	}

	return SelectMembers(ids), nil
}

// Membership reports whether the selection runs in membership mode.
func (s Selection) Membership() bool {
	return s.members != nil
}

// Keep reports whether a record's transcript passes the selection test.
func (s Selection) Keep(id string, rec *gtf.Record) bool {
	if s.members != nil {
		return s.members[id]
	}
	return rec.HasTag(s.tag)
}

// Members returns the membership set, nil in tag mode.
func (s Selection) Members() map[string]bool {
	return s.members
}

// stripVersion removes the version suffix from an Ensembl ID.
// e.g., "ENST00000456328.2" -> "ENST00000456328"
func stripVersion(id string) string {
	if idx := strings.LastIndex(id, "."); idx != -1 {
		return id[:idx]
	}
	return id
}
