package game

import "fmt"

// winChance returns the probability that a beats b.
func (w *World) winChance(a *Unit) float64 {
	if w.settings.Combat != CombatPopulationWeighted {
		return 0.5
	}
	population := w.Population()
	if population <= 0 {
		return 0.5
	}
	return 1 - float64(w.teams[a.team].Remaining)/float64(population)
}

// resolveCollision settles combat between two units on opposing teams. The
// loser either dies or, if the winner's team can corrupt, defects.
func (w *World) resolveCollision(a, b *Unit) {
	winner, loser := b, a
	if w.rng.Float64() < w.winChance(a) {
		winner, loser = a, b
	}
	a.combatTick = w.tick
	b.combatTick = w.tick
	w.kills++

	loserTeam := w.teams[loser.team]
	winnerTeam := w.teams[winner.team]

	if w.settings.AnnounceKills {
		msg := fmt.Sprintf("%s killed %s", winner.Label(), loser.Label())
		w.KillFeed.Add(w.tick, winner.team, msg)
	}
	w.log.Add(w.tick, winner.Label(), winner.team.String(), "combat", "kill", loser.Label(), float64(loser.id))

	loserTeam.Remaining--
	w.noteElimination(loserTeam.ID)

	if winnerTeam.CanCorrupt {
		from := loser.team
		winnerTeam.Remaining++
		loser.team = winnerTeam.ID
		loser.maxSpeed = winnerTeam.BaseSpeed
		loser.vel = loser.vel.Truncate(loser.maxSpeed)
		w.log.Add(w.tick, loser.Label(), loser.team.String(), "combat", "corrupt",
			fmt.Sprintf("%s → %s", from, loser.team), float64(loser.id))
	} else {
		loser.dead = true
	}

	winner.kills++
	if winner.kills > w.maxKills {
		w.maxKills = winner.kills
		w.highestKiller = winner.id
	}
}

// noteElimination logs a team whose remaining count has hit zero.
func (w *World) noteElimination(t TeamID) {
	if w.teams[t].Remaining <= 0 {
		w.log.Add(w.tick, "--", t.String(), "team", "eliminated", t.String()+" has been eliminated", 0)
	}
}
