package engagement

import (
	"github.com/cheerlink/cheerlink/internal/domain"
)

// FirstBonusTickets is the one-shot welcome bonus.
const FirstBonusTickets = 10

// refreshMissions recomputes every mission's Achieved flag from the current
// derived state. Claimed is never touched here — it is sticky once set, while
// Achieved may flip back to false when the window drains or the level drops.
func refreshMissions(st *domain.RootState, windowHits int) {
	for i := range st.Daily.Missions {
		m := &st.Daily.Missions[i]
		switch m.ID {
		case "m_window_10":
			m.Achieved = windowHits >= 10
		case "m_total_50":
			m.Achieved = st.Daily.TotalHits >= 50
		case "m_level_3":
			m.Achieved = st.Daily.Level >= 3
		}
	}
}

// ClaimMission marks a mission claimed and credits its ticket reward.
// Unknown, unachieved, or already-claimed missions leave state untouched.
func (s *Service) ClaimMission(id string) (int, error) {
	reward := 0
	err := s.sess.Update(func(st *domain.RootState) error {
		m := st.FindMission(id)
		if m == nil {
			return domain.ErrMissionNotFound
		}
		if !m.Achieved {
			return domain.ErrMissionNotAchieved
		}
		if m.Claimed {
			return domain.ErrMissionClaimed
		}
		m.Claimed = true
		st.Tickets += m.Reward
		reward = m.Reward
		return nil
	})
	return reward, err
}

// ClaimFirstBonus grants the one-time welcome tickets. Claimable exactly
// once; a second claim is a reported no-op.
func (s *Service) ClaimFirstBonus() (int, error) {
	err := s.sess.Update(func(st *domain.RootState) error {
		if st.FirstBonusClaimed {
			return domain.ErrBonusClaimed
		}
		st.FirstBonusClaimed = true
		st.Tickets += FirstBonusTickets
		return nil
	})
	if err != nil {
		return 0, err
	}
	return FirstBonusTickets, nil
}
