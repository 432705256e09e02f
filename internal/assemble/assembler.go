package assemble

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"geovision-backend/internal/encode"
	"geovision-backend/internal/inputs"
	"geovision-backend/internal/llm"
	"geovision-backend/internal/locale"
)

// Assembler turns an input snapshot into one llm.Request.
type Assembler struct {
	Encoder *encode.Encoder
}

// NewAssembler constructs an Assembler.
func NewAssembler(enc *encode.Encoder) *Assembler {
	return &Assembler{Encoder: enc}
}

// BuildRequest renders the localized prompt for the mode and encodes every
// attachment concurrently. Part order is deterministic regardless of encode
// completion order: prompt first, then attachments in canonical category and
// insertion order. The first encode failure aborts the whole build.
func (a *Assembler) BuildRequest(ctx context.Context, snap inputs.Snapshot, loc locale.Locale, mode Mode) (llm.Request, error) {
	table := locale.For(loc)

	if mode.Kind == ModeModule && !knownModule(table, mode.ModuleLabel) {
		return llm.Request{}, fmt.Errorf("%w: %q", ErrUnknownModule, mode.ModuleLabel)
	}

	summary := buildSummary(snap, table)

	var prompt string
	switch mode.Kind {
	case ModeModule:
		prompt = modulePrompt(loc, mode.ModuleLabel, summary)
	case ModeHeatmapScript:
		prompt = heatmapPrompt(loc, snap, table, summary)
	default:
		prompt = fullPrompt(loc, summary)
	}

	atts := snap.AllAttachments()
	parts := make([]llm.Part, len(atts)+1)
	parts[0] = llm.TextPart{Text: prompt}

	g, gctx := errgroup.WithContext(ctx)
	for i, att := range atts {
		g.Go(func() error {
			part, err := a.Encoder.Encode(gctx, att)
			if err != nil {
				return err
			}
			parts[i+1] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return llm.Request{}, err
	}

	return llm.Request{
		SystemInstruction: table.SystemInstruction,
		Parts:             parts,
	}, nil
}

func knownModule(table locale.Table, label string) bool {
	for _, m := range table.Modules {
		if m.Label == label {
			return true
		}
	}
	return false
}
