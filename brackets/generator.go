package brackets

import (
	"github.com/Dosada05/tournament-pairing/models"
)

type GeneratePairingsParams struct {
	Competitors []*models.Competitor
	Threshold   int
	Rand        RandomSource
}

// PairingGenerator produces the pairing set for one round.
type PairingGenerator interface {
	GeneratePairings(params GeneratePairingsParams) []models.Pairing

	GetName() string
}

type LossBracketGenerator struct{}

func NewLossBracketGenerator() PairingGenerator {
	return &LossBracketGenerator{}
}

func (g *LossBracketGenerator) GetName() string {
	return "LossBracket"
}

func (g *LossBracketGenerator) GeneratePairings(params GeneratePairingsParams) []models.Pairing {
	return GeneratePairings(params.Competitors, params.Threshold, params.Rand)
}
