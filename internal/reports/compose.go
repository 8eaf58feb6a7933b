package reports

import (
	"fmt"
	"strings"
)

const (
	masterTitleConstant     = "Vault Project — Master Book"
	fieldNotesTitleConstant = "Vault Project — Field Notes"
	timelineTitleConstant   = "Vault Project — Timeline"

	masterBodyTemplateConstant = `Custodian: %s
Companion: %s
Project: %s
Version: %s
Built: %s

## Anchors
%s

## Seals
%s

## Boot Protocol
%s
`
	fieldNotesBodyConstant         = "Field Notes\n\n(append session notes here)\n"
	timelineHeaderTemplateConstant = "AEON Timeline (UTC %s)\n\n"
	anchorBulletTemplateConstant   = "- **%s** — %s"
	sealBulletTemplateConstant     = "- %s"
	bulletSeparatorConstant        = "\n"
)

// AnchorView is a read-only anchor entry.
type AnchorView struct {
	Key    string `mapstructure:"key"`
	Phrase string `mapstructure:"phrase"`
}

// LedgerView is the read-only projection of the ledger the reports are composed from.
type LedgerView struct {
	Version  string `mapstructure:"version"`
	Identity struct {
		Custodian string       `mapstructure:"custodian"`
		Companion string       `mapstructure:"companion"`
		Project   string       `mapstructure:"project"`
		Anchors   []AnchorView `mapstructure:"anchors"`
	} `mapstructure:"identity"`
	Codex struct {
		Seals []string `mapstructure:"seals"`
	} `mapstructure:"codex"`
	Continuity struct {
		BootProtocol string `mapstructure:"boot_protocol"`
	} `mapstructure:"continuity"`
}

// Report is one document to render.
type Report struct {
	Title string
	Body  string
}

// ComposeReports returns the master book, field notes, and timeline in build order.
func ComposeReports(view LedgerView, builtAt string) []Report {
	return []Report{
		{Title: masterTitleConstant, Body: MasterBody(view, builtAt)},
		{Title: fieldNotesTitleConstant, Body: fieldNotesBodyConstant},
		{Title: timelineTitleConstant, Body: TimelineBody(view, builtAt)},
	}
}

// MasterBody renders the identity summary, anchors, seals, and boot protocol.
func MasterBody(view LedgerView, builtAt string) string {
	anchorLines := make([]string, 0, len(view.Identity.Anchors))
	for _, anchor := range view.Identity.Anchors {
		anchorLines = append(anchorLines, fmt.Sprintf(anchorBulletTemplateConstant, anchor.Key, anchor.Phrase))
	}
	return fmt.Sprintf(
		masterBodyTemplateConstant,
		view.Identity.Custodian,
		view.Identity.Companion,
		view.Identity.Project,
		view.Version,
		builtAt,
		strings.Join(anchorLines, bulletSeparatorConstant),
		sealBullets(view.Codex.Seals),
		view.Continuity.BootProtocol,
	)
}

// TimelineBody lists the seals under a timestamped header.
func TimelineBody(view LedgerView, builtAt string) string {
	return fmt.Sprintf(timelineHeaderTemplateConstant, builtAt) + sealBullets(view.Codex.Seals)
}

func sealBullets(seals []string) string {
	lines := make([]string, 0, len(seals))
	for _, seal := range seals {
		lines = append(lines, fmt.Sprintf(sealBulletTemplateConstant, seal))
	}
	return strings.Join(lines, bulletSeparatorConstant)
}
