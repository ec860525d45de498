package app

import (
	"fmt"

	"github.com/spcloud/urlship/internal/domain"
)

// DroppedEntry is an entry whose encoding alone exceeds the payload budget.
type DroppedEntry struct {
	Entry        domain.SignedURLEntry
	EncodedBytes int
}

// Packer groups signed entries into batches that each encode within the
// payload budget. It is a single-pass, first-fit packer: entries keep their
// input order within and across batches, and a batch is closed as soon as
// the next entry does not fit.
type Packer struct {
	budget  domain.PayloadBudget
	current *domain.Batch
}

// NewPacker creates a packer for the given budget.
func NewPacker(budget domain.PayloadBudget) *Packer {
	return &Packer{
		budget:  budget,
		current: domain.NewBatch(),
	}
}

// Add places e into the current batch.
// If e does not fit, the current batch is returned as completed and e starts
// a new one. If e does not fit even on its own it is reported as dropped and
// placed nowhere.
func (p *Packer) Add(e domain.SignedURLEntry) (completed *domain.Batch, dropped *DroppedEntry, err error) {
	enc, err := domain.EncodeEntry(e)
	if err != nil {
		return nil, nil, fmt.Errorf("encode entry %q: %w", e.Key, err)
	}
	n := len(enc)

	if p.budget.Fits(p.current.SizeWith(n)) {
		p.current.Add(e, n)
		return nil, nil, nil
	}

	if !p.current.Empty() {
		completed = p.current
		p.current = domain.NewBatch()
	}

	// p.current is empty here, so SizeWith is the single-entry array size.
	if single := p.current.SizeWith(n); !p.budget.Fits(single) {
		return completed, &DroppedEntry{Entry: e, EncodedBytes: single}, nil
	}

	p.current.Add(e, n)
	return completed, nil, nil
}

// Flush returns the pending batch, or nil when nothing is pending.
func (p *Packer) Flush() *domain.Batch {
	if p.current.Empty() {
		return nil
	}
	b := p.current
	p.current = domain.NewBatch()
	return b
}

// PackResult is the full packing of an entry sequence.
type PackResult struct {
	Batches []*domain.Batch
	Dropped []DroppedEntry
}

// Pack runs entries through a fresh Packer. The result is deterministic for
// a given input and budget.
func Pack(budget domain.PayloadBudget, entries []domain.SignedURLEntry) (PackResult, error) {
	var res PackResult
	p := NewPacker(budget)
	for _, e := range entries {
		completed, dropped, err := p.Add(e)
		if err != nil {
			return PackResult{}, err
		}
		if completed != nil {
			res.Batches = append(res.Batches, completed)
		}
		if dropped != nil {
			res.Dropped = append(res.Dropped, *dropped)
		}
	}
	if last := p.Flush(); last != nil {
		res.Batches = append(res.Batches, last)
	}
	return res, nil
}
