package vote

import (
	"sort"

	"github.com/matchdayhq/matchday/internal/domain/player"
)

// PodiumEntry is one ranked candidate of a match's peer vote.
type PodiumEntry struct {
	Candidate player.Ref
	Votes     int
	Rank      int
}

// Award is the credit paid to one podium member.
type Award struct {
	Candidate player.Ref
	Rank      int
	Amount    int64
}

// ComputePodium tallies ballots per candidate and ranks them by descending
// vote count with competition ranking: tied counts share a rank and the
// next distinct count takes the position after the whole tied group, so two
// candidates tied first leave rank two unassigned. Ties order candidates
// by ref key only for stable output; their rank is identical.
func ComputePodium(ballots []Ballot) []PodiumEntry {
	counts := make(map[player.Ref]int, len(ballots))
	for _, b := range ballots {
		if b.Candidate.IsZero() {
			continue
		}
		counts[b.Candidate]++
	}
	if len(counts) == 0 {
		return nil
	}

	entries := make([]PodiumEntry, 0, len(counts))
	for candidate, votes := range counts {
		entries = append(entries, PodiumEntry{Candidate: candidate, Votes: votes})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Votes != entries[j].Votes {
			return entries[i].Votes > entries[j].Votes
		}
		return entries[i].Candidate.Key() < entries[j].Candidate.Key()
	})

	for i := range entries {
		if i > 0 && entries[i].Votes == entries[i-1].Votes {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}

	return entries
}

// Payouts converts a podium into credit awards. Every member of a tied
// group receives the full reward of the shared rank; ranks past the reward
// table pay nothing and are omitted.
func Payouts(podium []PodiumEntry, rewards []int64) []Award {
	out := make([]Award, 0, len(podium))
	for _, entry := range podium {
		if entry.Rank < 1 || entry.Rank > len(rewards) {
			continue
		}
		amount := rewards[entry.Rank-1]
		if amount == 0 {
			continue
		}
		out = append(out, Award{Candidate: entry.Candidate, Rank: entry.Rank, Amount: amount})
	}
	return out
}
