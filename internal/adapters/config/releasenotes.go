package config

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

var versionRegex = regexp.MustCompile(`\d+\.\d+(?:\.\d+)*(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?`)

// ReleaseNotes is the newest entry of a release notes file.
type ReleaseNotes struct {
	Version string
	Notes   []string
}

// ParseReleaseNotes extracts the newest release from a markdown release notes file.
//
// Two layouts are understood. A heading per release, with the notes as the
// following list items or paragraphs:
//
//	### 1.2.0 - 2024-03-01
//	* Fixed the parser
//
// Or a single list with one line per release:
//
//	* 1.2.0 - Fixed the parser
func ParseReleaseNotes(source []byte) (*ReleaseNotes, error) {
	root := goldmark.New().Parser().Parse(text.NewReader(source))

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *gmast.Heading:
			version := versionRegex.FindString(nodeText(node, source))
			if version == "" {
				continue
			}
			return &ReleaseNotes{Version: version, Notes: sectionNotes(node, source)}, nil
		case *gmast.List:
			item := node.FirstChild()
			if item == nil {
				continue
			}
			line := nodeText(item, source)
			loc := versionRegex.FindStringIndex(line)
			if loc == nil || loc[0] != 0 {
				continue
			}
			notes := strings.TrimLeft(line[loc[1]:], " -")
			rn := &ReleaseNotes{Version: line[:loc[1]]}
			for _, note := range strings.Split(notes, ";") {
				if note = strings.TrimSpace(note); note != "" {
					rn.Notes = append(rn.Notes, note)
				}
			}
			return rn, nil
		}
	}

	return nil, zerr.Wrap(domain.ErrReleaseNotesParseFailed, "no release version found")
}

// sectionNotes collects the blocks following a heading up to the next heading of
// the same or a higher level.
func sectionNotes(heading *gmast.Heading, source []byte) []string {
	var notes []string
	for n := heading.NextSibling(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*gmast.Heading); ok && h.Level <= heading.Level {
			break
		}
		if list, ok := n.(*gmast.List); ok {
			for item := list.FirstChild(); item != nil; item = item.NextSibling() {
				notes = append(notes, nodeText(item, source))
			}
			continue
		}
		if t := nodeText(n, source); t != "" {
			notes = append(notes, t)
		}
	}
	return notes
}

// nodeText concatenates the text segments below n.
func nodeText(n gmast.Node, source []byte) string {
	var sb strings.Builder
	_ = gmast.Walk(n, func(child gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *gmast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *gmast.String:
			sb.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
