package storage

import (
	"errors"
	"sort"

	"github.com/SASASDAa/tgsg-sub000/internal/game"
	"github.com/SASASDAa/tgsg-sub000/internal/keys"
	"github.com/SASASDAa/tgsg-sub000/internal/rewards"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
	// knownCard reports whether a card id exists in the catalog; unknown
	// ids are never added to a collection.
	knownCard func(id string) bool
}

func NewSQLiteRepository(db *gorm.DB, knownCard func(id string) bool) Repository {
	if knownCard == nil {
		knownCard = func(string) bool { return true }
	}
	return &sqliteRepository{db: db, knownCard: knownCard}
}

func (r *sqliteRepository) GetProfile(playerID string) (*game.Profile, error) {
	var p game.Profile
	if err := r.db.Preload("OwnedCards").Where("player_id = ?", playerID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) CreateProfile(p *game.Profile, starterCards []string, starterDeck *game.Deck) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		if err := r.addCards(tx, p.ID, starterCards); err != nil {
			return err
		}
		if starterDeck != nil {
			starterDeck.ProfileID = p.ID
			starterDeck.Signature = keys.DeckKeyFromCardIDs(starterDeck.CardIDs)
			starterDeck.IsActive = true
			if err := tx.Create(starterDeck).Error; err != nil {
				return err
			}
		}
		return tx.Preload("OwnedCards").First(p, p.ID).Error
	})
}

func (r *sqliteRepository) UpdateProfileIdentity(playerID, name, avatarURL string) (*game.Profile, error) {
	updates := map[string]interface{}{"name": name}
	if avatarURL != "" {
		updates["avatar_url"] = avatarURL
	}
	res := r.db.Model(&game.Profile{}).Where("player_id = ?", playerID).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrProfileNotFound
	}
	return r.GetProfile(playerID)
}

// addCards adds one copy per occurrence of each known id.
func (r *sqliteRepository) addCards(tx *gorm.DB, profileID uint, ids []string) error {
	counts := make(map[string]int, len(ids))
	for _, id := range ids {
		if r.knownCard(id) {
			counts[id]++
		}
	}
	ordered := make([]string, 0, len(counts))
	for id := range counts {
		ordered = append(ordered, id)
	}
	sort.Strings(ordered)

	for _, id := range ordered {
		var oc game.OwnedCard
		if err := tx.Where("profile_id = ? AND card_id = ?", profileID, id).First(&oc).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			oc = game.OwnedCard{ProfileID: profileID, CardID: id}
		}
		oc.Count += counts[id]
		if err := tx.Save(&oc).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *sqliteRepository) profileID(tx *gorm.DB, playerID string) (uint, error) {
	var p game.Profile
	if err := tx.Select("id").Where("player_id = ?", playerID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrProfileNotFound
		}
		return 0, err
	}
	return p.ID, nil
}

func (r *sqliteRepository) ListDecks(playerID string) ([]game.Deck, error) {
	pid, err := r.profileID(r.db, playerID)
	if err != nil {
		return nil, err
	}
	decks := []game.Deck{}
	if err := r.db.Where("profile_id = ?", pid).Order("id asc").Find(&decks).Error; err != nil {
		return nil, err
	}
	return decks, nil
}

func (r *sqliteRepository) SaveDeck(playerID string, d *game.Deck) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		pid, err := r.profileID(tx, playerID)
		if err != nil {
			return err
		}
		d.ProfileID = pid
		d.Signature = keys.DeckKeyFromCardIDs(d.CardIDs)

		var dup int64
		if err := tx.Model(&game.Deck{}).
			Where("profile_id = ? AND signature = ? AND id <> ?", pid, d.Signature, d.ID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrDuplicateDeck
		}

		if d.ID != 0 {
			var existing game.Deck
			if err := tx.Where("id = ? AND profile_id = ?", d.ID, pid).First(&existing).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrDeckNotFound
				}
				return err
			}
			d.CreatedAt = existing.CreatedAt
		}

		var active int64
		if err := tx.Model(&game.Deck{}).Where("profile_id = ? AND is_active = ? AND id <> ?", pid, true, d.ID).Count(&active).Error; err != nil {
			return err
		}
		if active == 0 {
			d.IsActive = true
		}
		if err := tx.Save(d).Error; err != nil {
			return err
		}
		if d.IsActive {
			return tx.Model(&game.Deck{}).Where("profile_id = ? AND id <> ?", pid, d.ID).Update("is_active", false).Error
		}
		return nil
	})
}

func (r *sqliteRepository) SetActiveDeck(playerID string, deckID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		pid, err := r.profileID(tx, playerID)
		if err != nil {
			return err
		}
		res := tx.Model(&game.Deck{}).Where("id = ? AND profile_id = ?", deckID, pid).Update("is_active", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrDeckNotFound
		}
		return tx.Model(&game.Deck{}).Where("profile_id = ? AND id <> ?", pid, deckID).Update("is_active", false).Error
	})
}

func (r *sqliteRepository) GetActiveDeck(playerID string) (*game.Deck, error) {
	pid, err := r.profileID(r.db, playerID)
	if err != nil {
		return nil, err
	}
	var d game.Deck
	if err := r.db.Where("profile_id = ? AND is_active = ?", pid, true).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeckNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *sqliteRepository) ApplyMatchResult(playerID string, progress game.ProfileProgress, rec *game.MatchRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var p game.Profile
		if err := tx.Where("player_id = ?", playerID).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}
			return err
		}
		var seen int64
		if err := tx.Model(&game.MatchRecord{}).Where("match_id = ? AND player_id = ?", rec.MatchID, playerID).Count(&seen).Error; err != nil {
			return err
		}
		if seen > 0 {
			return ErrResultAlreadySeen
		}

		p.Level = progress.Level
		p.XP = progress.XP
		p.XPToNextLevel = progress.XPToNextLevel
		p.Rating = progress.Rating
		p.GamesPlayed++
		switch {
		case progress.Won && progress.OpponentType == game.OpponentBot:
			p.Wins++
			p.BotWins++
		case progress.Won:
			p.Wins++
		default:
			p.Losses++
		}
		coins, dust, packs, cards := rewards.Totals(progress.Rewards)
		p.Coins += coins
		p.Dust += dust
		p.CardPacks += packs
		if err := tx.Omit("OwnedCards").Save(&p).Error; err != nil {
			return err
		}
		if err := r.addCards(tx, p.ID, cards); err != nil {
			return err
		}

		rec.PlayerID = playerID
		if rec.Rewards == nil {
			rec.Rewards = progress.Rewards
		}
		return tx.Create(rec).Error
	})
}

func (r *sqliteRepository) ListMatches(playerID string, limit int) ([]game.MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	recs := []game.MatchRecord{}
	if err := r.db.Where("player_id = ?", playerID).
		Order("finished_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// GetTopPlayers returns top N profiles ordered by rating desc, then wins desc
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.Profile, error) {
	if limit <= 0 {
		limit = 10
	}
	var profiles []game.Profile
	if err := r.db.Model(&game.Profile{}).
		Order("rating DESC").
		Order("wins DESC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
