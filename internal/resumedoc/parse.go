// Package resumedoc parses the indentation-based resume text format into a
// domain.ResumeRecord, converts records to and from the JSON transport, and
// normalizes the date literals both directions use.
//
// The text format is a small YAML-like subset read line by line: two spaces
// per nesting level, list entries introduced by "- key: value", and at most
// three levels of nesting. It is not a YAML parser.
package resumedoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"resume-builder/internal/domain"
)

// Outcome describes what the parser did with a classified line.
type Outcome string

const (
	OutcomeBlank    Outcome = "blank"
	OutcomeSection  Outcome = "section"
	OutcomeApplied  Outcome = "applied"
	OutcomeOpened   Outcome = "opened"
	OutcomeConsumed Outcome = "consumed"
	OutcomeDropped  Outcome = "dropped"
)

// Step is one traced line of a parse.
type Step struct {
	Line    int
	Text    string
	Class   Classification
	Outcome Outcome
}

// Parser turns text documents into records. The zero value is ready to use;
// options only add observation, never change results.
type Parser struct {
	logger *slog.Logger
	trace  func(Step)
}

type Option func(*Parser)

// WithLogger makes the parser log dropped lines at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// WithTrace calls fn for every input line in order.
func WithTrace(fn func(Step)) Option {
	return func(p *Parser) { p.trace = fn }
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, o := range opts {
		o(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse parses a text document with the default parser.
func Parse(data []byte) (*domain.ResumeRecord, error) { return defaultParser.Parse(data) }

// ParseString is Parse for string input.
func ParseString(s string) (*domain.ResumeRecord, error) { return defaultParser.Parse([]byte(s)) }

// Explain parses data and returns the per-line trace.
func Explain(data []byte) ([]Step, error) {
	var steps []Step
	p := NewParser(WithTrace(func(s Step) { steps = append(steps, s) }))
	if _, err := p.Parse(data); err != nil {
		return nil, err
	}
	return steps, nil
}

// ParseReader reads the whole document before parsing. Read failures are
// reported as a malformed document.
func (p *Parser) ParseReader(r io.Reader) (*domain.ResumeRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, malformed("text", fmt.Errorf("read: %w", err))
	}
	return p.Parse(data)
}

// Parse builds a fresh record from data in a single pass. Lines that match
// no rule, and fields with nothing open to receive them, are dropped.
func (p *Parser) Parse(data []byte) (*domain.ResumeRecord, error) {
	if !utf8.Valid(data) {
		return nil, malformed("text", errors.New("input is not valid UTF-8 text"))
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	b := newBuilder()
	for i := 0; i < len(lines); {
		c := Classify(lines[i], b.section.current, b.cur.kind)
		next := i + 1
		outcome := OutcomeApplied

		switch c.Kind {
		case LineBlank:
			outcome = OutcomeBlank
		case LineName:
			b.enterSection(c.Section)
			b.rec.Name = c.Value
		case LineSection:
			b.enterSection(c.Section)
			outcome = OutcomeSection
			if c.Section == SectionSummary {
				var text string
				text, next = readSummary(lines, i, c.Value)
				b.appendSummary(text)
			}
		case LineContactField:
			if !b.setContact(c.Key, c.Value) {
				outcome = OutcomeDropped
			}
		case LineSummaryText:
			b.appendSummary(c.Value)
		case LineEntityStart:
			b.open(c.Entity, c.Key, c.Value)
			outcome = OutcomeOpened
		case LineEntityField:
			if !b.setField(c.Key, c.Value) {
				outcome = OutcomeDropped
			}
		case LineSkillItems:
			b.setField(c.Key, c.Value)
		case LineAchievements:
			var items []domain.Achievement
			items, next = readAchievements(lines, i)
			b.addAchievements(items)
		default:
			outcome = OutcomeDropped
		}

		p.record(i, lines[i], c, outcome)
		for j := i + 1; j < next; j++ {
			p.record(j, lines[j], Classification{Kind: c.Kind, Rule: c.Rule, Indent: indentOf(lines[j])}, OutcomeConsumed)
		}
		i = next
	}
	return b.rec, nil
}

func (p *Parser) record(i int, text string, c Classification, o Outcome) {
	if p.trace != nil {
		p.trace(Step{Line: i + 1, Text: text, Class: c, Outcome: o})
	}
	if o == OutcomeDropped && p.logger != nil {
		p.logger.Debug("resumedoc: dropped line", "line", i+1, "kind", c.Kind.String(), "text", strings.TrimSpace(text))
	}
}
