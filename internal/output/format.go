// Package output formatiert Tasks und Kategorien für die CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"hufschlaeger.net/task-records/internal/domain/records"
	"hufschlaeger.net/task-records/pkg/utils"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat akzeptiert table, json und yaml (Groß-/Kleinschreibung egal)
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unbekanntes Ausgabeformat %q (table, json, yaml)", s)
}

type Printer struct {
	w      io.Writer
	format Format
}

func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

// Structured meldet, ob maschinenlesbar (json/yaml) ausgegeben wird
func (p *Printer) Structured() bool {
	return p.format != FormatTable
}

// Tasks gibt eine Liste aus; im Tabellenformat eine Zeile pro Task
func (p *Printer) Tasks(list []records.Task) error {
	if p.format != FormatTable {
		return p.Value(list)
	}
	if len(list) == 0 {
		fmt.Fprintln(p.w, "Keine Tasks")
		return nil
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tPRIORITY\tDUE\tCATEGORY\tORDER\tTITLE")
	for _, t := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n",
			t.ID, checkmark(t.Completed), t.Priority, dueDate(t.DueDate), int(t.Category), t.Order, normalizeTitle(t.Title))
	}
	return tw.Flush()
}

// Task gibt einen einzelnen Task aus
func (p *Printer) Task(t *records.Task) error {
	if p.format != FormatTable {
		return p.Value(t)
	}
	if t == nil {
		fmt.Fprintln(p.w, "Task nicht gefunden")
		return nil
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", t.ID)
	fmt.Fprintf(tw, "Titel:\t%s\n", normalizeTitle(t.Title))
	fmt.Fprintf(tw, "Status:\t%s %s\n", checkmark(t.Completed), t.Status)
	fmt.Fprintf(tw, "Priorität:\t%s\n", t.Priority)
	fmt.Fprintf(tw, "Fällig:\t%s\n", dueDate(t.DueDate))
	fmt.Fprintf(tw, "Kategorie:\t%d\n", int(t.Category))
	fmt.Fprintf(tw, "Reihenfolge:\t%d\n", t.Order)
	fmt.Fprintf(tw, "Erstellt:\t%s\n", utils.FormatDateForDisplay(t.CreatedAt))
	if t.Description != "" {
		fmt.Fprintf(tw, "Beschreibung:\t%s\n", t.Description)
	}
	return tw.Flush()
}

func (p *Printer) Categories(list []records.Category) error {
	if p.format != FormatTable {
		return p.Value(list)
	}
	if len(list) == 0 {
		fmt.Fprintln(p.w, "Keine Kategorien")
		return nil
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCOLOR\tICON")
	for _, c := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.Color, c.Icon)
	}
	return tw.Flush()
}

func (p *Printer) Category(c *records.Category) error {
	if p.format != FormatTable {
		return p.Value(c)
	}
	if c == nil {
		fmt.Fprintln(p.w, "Kategorie nicht gefunden")
		return nil
	}
	return p.Categories([]records.Category{*c})
}

// Value serialisiert beliebige Werte als JSON oder YAML. Im Tabellenformat
// wird fmt's Standarddarstellung verwendet.
func (p *Printer) Value(v interface{}) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	_, err := fmt.Fprintf(p.w, "%+v\n", v)
	return err
}

func checkmark(done bool) string {
	if done {
		return "✅"
	}
	return "⬜"
}

func dueDate(d *string) string {
	if d == nil {
		return "-"
	}
	return utils.FormatDateForDisplay(*d)
}

// normalizeTitle macht mehrzeilige oder leere Titel tabellentauglich
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(ohne Titel)"
	}
	return title
}
