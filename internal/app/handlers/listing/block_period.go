package listing

import (
	"context"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	domainlisting "staybook/internal/domain/listing"
	"staybook/internal/domain/shared/period"
)

const blockPeriodKey = "listing.block_period"

type BlockPeriodCommand struct {
	ListingID string
	From      time.Time
	To        time.Time
}

func (c BlockPeriodCommand) Key() string { return blockPeriodKey }

type BlockPeriodResult struct {
	Listing dto.ListingDTO `json:"listing"`
}

// BlockPeriodHandler applies a host-initiated manual block. Blocks share the
// availability precondition with holds but carry no expiry and are never
// auto-released.
type BlockPeriodHandler struct {
	Listings domainlisting.Repository
	Now      func() time.Time
}

func (h *BlockPeriodHandler) Handle(ctx context.Context, cmd BlockPeriodCommand) (*BlockPeriodResult, error) {
	p, err := period.New(cmd.From, cmd.To)
	if err != nil {
		return nil, err
	}
	l, err := h.Listings.ByID(ctx, domainlisting.ListingID(cmd.ListingID))
	if err != nil {
		return nil, err
	}
	blocked, err := l.BlockPeriod(p, h.now())
	if err != nil {
		return nil, err
	}
	if err := h.Listings.Save(ctx, blocked); err != nil {
		return nil, err
	}
	return &BlockPeriodResult{Listing: dto.NewListingDTO(blocked)}, nil
}

func (h *BlockPeriodHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[BlockPeriodCommand, *BlockPeriodResult] = (*BlockPeriodHandler)(nil)
