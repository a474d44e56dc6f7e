package generator

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Section labels a block of lyrics.
type Section string

const (
	SectionIntro  Section = "Intro"
	SectionVerse  Section = "Verse"
	SectionChorus Section = "Chorus"
	SectionBridge Section = "Bridge"
	SectionOutro  Section = "Outro"
)

var sectionOrders = [][]Section{
	{SectionIntro, SectionVerse, SectionChorus, SectionVerse, SectionChorus, SectionBridge, SectionChorus, SectionOutro},
	{SectionVerse, SectionChorus, SectionVerse, SectionChorus, SectionBridge, SectionChorus},
	{SectionIntro, SectionVerse, SectionChorus, SectionBridge, SectionChorus, SectionOutro},
	{SectionVerse, SectionVerse, SectionChorus, SectionBridge, SectionChorus, SectionOutro},
}

// Params are the caller-supplied fields interpolated into lyric templates.
type Params struct {
	Genre    string
	Duration string
	Prompt   string
}

func (p Params) withFallbacks() Params {
	p.Genre = orDefault(p.Genre, fallbackGenre)
	p.Duration = orDefault(p.Duration, fallbackDuration)
	p.Prompt = orDefault(p.Prompt, fallbackPrompt)
	return p
}

func orDefault(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}

// Title builds "<Adjective> <Noun>" followed by the first word of prompt, if any.
func Title(r *Rand, prompt string) string {
	adj := Pick(r, adjectives)
	noun := Pick(r, nouns)

	title := adj + " " + noun
	if words := strings.Fields(prompt); len(words) > 0 {
		title += " " + cases.Title(language.English).String(words[0])
	}
	return title
}

// Lyrics assembles a full lyric sheet. Sections are headed by "[Label]" lines
// and separated by a blank line.
func Lyrics(r *Rand, p Params) string {
	p = p.withFallbacks()
	order := Pick(r, sectionOrders)
	hook := Pick(r, hooks)

	var b strings.Builder
	for i, section := range order {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("[" + string(section) + "]")
		for _, line := range sectionLines(r, section, p, hook) {
			b.WriteByte('\n')
			b.WriteString(line)
		}
	}
	return b.String()
}

func sectionLines(r *Rand, section Section, p Params, hook string) []string {
	switch section {
	case SectionChorus:
		n := Between(r, 4, 6)
		lines := make([]string, n)
		for i := range lines {
			lines[i] = hook
		}
		return lines
	case SectionBridge:
		return []string{
			"Echoes rise where stories start",
			fmt.Sprintf("And if the %s should fade away", strings.ToLower(Pick(r, nouns))),
			fmt.Sprintf("Remember how %s", Pick(r, images)),
			"Fade away but keep the heart",
		}
	default:
		n := Between(r, 4, 6)
		lines := make([]string, 0, n)
		for i := 0; i < n; i++ {
			lines = append(lines, verseLine(r, p))
		}
		return lines
	}
}

func verseLine(r *Rand, p Params) string {
	switch Between(r, 0, 2) {
	case 0:
		return fmt.Sprintf("In the %s glow, %s", p.Genre, Pick(r, images))
	case 1:
		return fmt.Sprintf("Counting down the time (%s), %s", p.Duration, Pick(r, actions))
	default:
		adj := Pick(r, adjectives)
		noun := strings.ToLower(Pick(r, nouns))
		return fmt.Sprintf("%s %s calling out for %s", adj, noun, p.Prompt)
	}
}
