package blackjackService

// PlayerOutcome is one seat's final standing and balance delta for a round.
type PlayerOutcome struct {
	PlayerID string
	Bet      int
	Score    int
	Hand     []Card
	Busted   bool
	Winner   bool
	Share    int
	Delta    int
}

// Settlement is the terminal computation for a finished round. Outcomes keep
// seat order, which is also the order remainder chips are handed out in, so
// payouts are reproducible.
type Settlement struct {
	Outcomes  []PlayerOutcome
	Pot       int
	BaseShare int
	Remainder int
}

// computeSettlement partitions the seats into winners and losers and splits
// the losers' pot. Every loser pays their own bet; winners keep their stake
// and split the pot evenly, with the leftover chips going one apiece to the
// earliest-seated winners. The deltas always sum to zero.
func computeSettlement(outcomes []PlayerOutcome) *Settlement {
	s := &Settlement{Outcomes: outcomes}

	maxScore := 0
	anyAlive := false
	for i := range s.Outcomes {
		o := &s.Outcomes[i]
		o.Busted = o.Score > 21
		if !o.Busted {
			anyAlive = true
			if o.Score > maxScore {
				maxScore = o.Score
			}
		}
	}

	if !anyAlive {
		for i := range s.Outcomes {
			s.Outcomes[i].Delta = -s.Outcomes[i].Bet
		}
		return s
	}

	winners := 0
	for i := range s.Outcomes {
		o := &s.Outcomes[i]
		if !o.Busted && o.Score == maxScore {
			o.Winner = true
			winners++
		} else {
			s.Pot += o.Bet
		}
	}

	s.BaseShare = s.Pot / winners
	s.Remainder = s.Pot % winners

	paid := 0
	for i := range s.Outcomes {
		o := &s.Outcomes[i]
		if !o.Winner {
			o.Delta = -o.Bet
			continue
		}
		o.Share = s.BaseShare
		if paid < s.Remainder {
			o.Share++
		}
		paid++
		o.Delta = o.Share
	}
	return s
}
