package httphandler

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
	"github.com/gaze-network/presale-ledger/modules/presale/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type tier struct {
	Index              int    `json:"index"`
	CumulativeCapacity uint64 `json:"cumulativeCapacity"`
	UnitPrice          uint64 `json:"unitPrice"`
}

type token struct {
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

type schedule struct {
	SaleStart  int64  `json:"saleStart"`
	SaleEnd    int64  `json:"saleEnd"`
	ClaimStart *int64 `json:"claimStart"`
}

type getInfoResult struct {
	Address             string   `json:"address"`
	Owner               string   `json:"owner"`
	Payout              string   `json:"payout"`
	Phase               string   `json:"phase"`
	Paused              bool     `json:"paused"`
	Schedule            schedule `json:"schedule"`
	Tiers               []tier   `json:"tiers"`
	OverallCap          uint64   `json:"overallCap"`
	TotalSold           uint64   `json:"totalSold"`
	CurrentTierIndex    int      `json:"currentTierIndex"`
	CurrentPrice        uint64   `json:"currentPrice"`
	TotalCost           string   `json:"totalCost"`
	TreasuryRequirement *amount  `json:"treasuryRequirement"`
	TreasuryBalance     *amount  `json:"treasuryBalance"`
	Asset               token    `json:"asset"`
	Quote               token    `json:"quote"`
	Native              token    `json:"native"`
}

type getInfoResponse = HttpResponse[getInfoResult]

func mapSchedule(s entity.Schedule) schedule {
	result := schedule{
		SaleStart: s.SaleStart.Unix(),
		SaleEnd:   s.SaleEnd.Unix(),
	}
	if s.ClaimConfigured() {
		result.ClaimStart = lo.ToPtr(s.ClaimStart.Unix())
	}
	return result
}

func mapToken(t usecase.TokenInfo) token {
	return token{Symbol: t.Symbol, Decimals: t.Decimals}
}

func (h *HttpHandler) GetInfo(ctx *fiber.Ctx) (err error) {
	info, err := h.usecase.GetInfo(ctx.UserContext())
	if err != nil {
		return errors.Wrap(err, "error during GetInfo")
	}

	tiers := lo.Map(info.Tiers, func(t entity.Tier, i int) tier {
		return tier{Index: i, CumulativeCapacity: t.CumulativeCapacity, UnitPrice: t.UnitPrice}
	})
	return errors.WithStack(ctx.JSON(getInfoResponse{
		Result: &getInfoResult{
			Address:             strings.ToLower(info.Address.Hex()),
			Owner:               strings.ToLower(info.Owner.Hex()),
			Payout:              strings.ToLower(info.Payout.Hex()),
			Phase:               info.Phase.String(),
			Paused:              info.Paused,
			Schedule:            mapSchedule(info.Schedule),
			Tiers:               tiers,
			OverallCap:          info.OverallCap,
			TotalSold:           info.State.TotalSold,
			CurrentTierIndex:    info.State.CurrentTierIndex,
			CurrentPrice:        info.CurrentPrice,
			TotalCost:           info.TotalCost.String(),
			TreasuryRequirement: newAmount(info.TreasuryRequirement, info.Asset.Decimals),
			TreasuryBalance:     newAmount(info.TreasuryBalance, info.Asset.Decimals),
			Asset:               mapToken(info.Asset),
			Quote:               mapToken(info.Quote),
			Native:              mapToken(info.Native),
		},
	}))
}
