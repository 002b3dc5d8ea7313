package kb

import (
	"regexp"
	"strconv"
	"strings"
)

// ballastSections lists headings considered front-matter rather than
// actionable guidance, and therefore capped at one per retrieval.
var ballastSections = map[string]bool{
	"introduction": true,
	"scope":        true,
	"overview":     true,
	"about":        true,
	"preface":      true,
}

// headingBoundary matches the start of a line beginning with "## ", the
// section boundary chunkDocument splits on.
var headingBoundary = regexp.MustCompile(`(?m)^##[ \t]`)

// headingTitle extracts the title of a "## Title" heading line.
var headingTitle = regexp.MustCompile(`^##\s+(.+?)\s*$`)

// normalizeHeadingPrefix strips leading numbering like "1) " or "2. " before
// comparing a section title against ballastSections.
var normalizeHeadingPrefix = regexp.MustCompile(`^[\d)\.\-\s]+`)

const (
	maxSectionChars = 2000
	subChunkTarget  = 1500
)

// chunkDocument splits a raw KB markdown document into Chunks using a "##
// heading" split, re-chunking any section over 2000 chars on paragraph
// boundaries.
func chunkDocument(content, docName string) []Chunk {
	sections := splitOnHeadings(content)

	var chunks []Chunk
	for _, section := range sections {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}

		title := "Introduction"
		if m := headingTitle.FindStringSubmatch(firstLine(section)); m != nil {
			title = strings.TrimSpace(m[1])
		}

		if len(section) > maxSectionChars {
			chunks = append(chunks, subChunkSection(section, docName, title)...)
		} else {
			chunks = append(chunks, Chunk{
				Content:   section,
				Doc:       docName,
				Section:   title,
				IsBallast: isBallastSection(title),
			})
		}
	}

	if len(chunks) == 0 {
		truncated := content
		if len(truncated) > maxSectionChars {
			truncated = truncated[:maxSectionChars]
		}
		chunks = append(chunks, Chunk{
			Content:   truncated,
			Doc:       docName,
			Section:   "Full document",
			IsBallast: false,
		})
	}

	return chunks
}

// splitOnHeadings splits content at the start of every line beginning with
// "## ", keeping the heading attached to the section that follows it.
func splitOnHeadings(content string) []string {
	locs := headingBoundary.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return []string{content}
	}

	var sections []string
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			sections = append(sections, content[prev:loc[0]])
		}
		prev = loc[0]
	}
	sections = append(sections, content[prev:])
	return sections
}

// subChunkSection re-chunks an oversized section into ~1500-char pieces on
// paragraph (blank-line) boundaries, suffixing each piece with "(part N)".
func subChunkSection(section, docName, title string) []Chunk {
	paragraphs := strings.Split(section, "\n\n")

	var out []Chunk
	var current strings.Builder
	chunkIdx := 0
	ballast := isBallastSection(title)

	appendPart := func(content string, idx int) {
		text := strings.TrimSpace(content)
		if text == "" {
			return
		}
		out = append(out, Chunk{
			Content:   text,
			Doc:       docName,
			Section:   title + " (part " + strconv.Itoa(idx+1) + ")",
			IsBallast: ballast,
		})
	}

	for _, para := range paragraphs {
		if current.Len()+len(para) < subChunkTarget {
			current.WriteString(para)
			current.WriteString("\n\n")
		} else {
			if current.Len() > 0 {
				appendPart(current.String(), chunkIdx)
				chunkIdx++
			}
			current.Reset()
			current.WriteString(para)
			current.WriteString("\n\n")
		}
	}

	if current.Len() > 0 {
		appendPart(current.String(), chunkIdx)
	}

	return out
}

func isBallastSection(title string) bool {
	normalized := normalizeHeadingPrefix.ReplaceAllString(title, "")
	normalized = strings.ToLower(strings.TrimSpace(normalized))
	if idx := strings.Index(normalized, "("); idx >= 0 {
		normalized = strings.TrimSpace(normalized[:idx])
	}
	return ballastSections[normalized]
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
