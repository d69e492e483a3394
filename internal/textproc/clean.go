// Package textproc repairs and normalizes text extracted from PDFs or
// pasted into the submission form.
package textproc

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// mojibake repairs Latin-1/Windows-1252 text that was misread as UTF-8,
// a recurring pdftotext artifact. Entries are matched in declaration
// order, so the longer punctuation sequences and the explicit
// invisible-second-rune pairs come before their bare prefixes.
// Invisible runes (NBSP, soft hyphen, C1 controls) are escaped.
var mojibake = strings.NewReplacer(
	"â€™", "’", // â€™
	"â€˜", "‘", // â€˜
	"â€œ", "“", // â€œ
	"â€", "”", // â€ + C1 control
	"â€“", "–", // â€“
	"â€”", "—", // â€”
	"â€¦", "…", // â€¦
	"â€¢", "•", // â€¢
	"â€", "”", // bare â€ (closing quote with the control dropped)
	"Ã¡", "á", // Ã¡
	"Ã©", "é", // Ã©
	"Ã­", "í", // Ã + soft hyphen
	"Ã³", "ó", // Ã³
	"Ãº", "ú", // Ãº
	"Ã±", "ñ", // Ã±
	"Ã ", "à", // Ã + NBSP
	"Ã¨", "è", // Ã¨
	"Ã¬", "ì", // Ã¬
	"Ã²", "ò", // Ã²
	"Ã¹", "ù", // Ã¹
	"Ã¢", "â", // Ã¢
	"Ãª", "ê", // Ãª
	"Ã®", "î", // Ã®
	"Ã´", "ô", // Ã´
	"Ã»", "û", // Ã»
	"Ã¤", "ä", // Ã¤
	"Ã¶", "ö", // Ã¶
	"Ã¼", "ü", // Ã¼
	"ÃŸ", "ß", // ÃŸ
	"Ã§", "ç", // Ã§
	"Ã£", "ã", // Ã£
	"Ãµ", "õ", // Ãµ
	"Ã", "É", // Ã + C1 control
)

// hyphenBreak matches a lowercase letter, a hyphen and a line break
// followed by another lowercase letter: a word pdftotext split across
// lines. Hyphens before uppercase or digits are kept.
var hyphenBreak = regexp.MustCompile(`(\p{Ll})-\n(\p{Ll})`)

// Clean repairs mis-decoded accented characters, normalizes Unicode to
// NFC, rejoins hyphenated line breaks, trims every line and collapses
// runs of blank lines to a single paragraph break. It is total (always
// returns a string) and idempotent.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}

	s := mojibake.Replace(raw)
	s = norm.NFC.String(s)

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			blanks++
			if blanks > 1 {
				continue
			}
			out = append(out, "")
			continue
		}
		blanks = 0
		out = append(out, line)
	}

	// Rejoining runs after the per-line trim, so "exam- \nple" and
	// "exam-\nple" collapse in the same pass. Iterated to a fixpoint
	// because a replacement is not rescanned, which would leave chained
	// breaks ("con-\ntin-\nued") half-joined.
	s = strings.Join(out, "\n")
	for {
		joined := hyphenBreak.ReplaceAllString(s, "$1$2")
		if joined == s {
			break
		}
		s = joined
	}

	return strings.TrimSpace(s)
}
