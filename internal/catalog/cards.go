package catalog

import (
	"fmt"

	"github.com/SASASDAa/tgsg-sub000/internal/game"
)

func ability(t game.AbilityType, desc string) game.Ability {
	return game.Ability{Type: t, Description: desc}
}

func battlecry(desc string, e *game.Effect) game.Ability {
	return game.Ability{Type: game.AbilityBattlecry, Description: desc, Effect: e}
}

var (
	taunt   = ability(game.AbilityTaunt, "cardability_taunt_full")
	charge  = ability(game.AbilityCharge, "cardability_charge_full")
	stealth = ability(game.AbilityStealth, "cardability_stealth_full")
)

func minion(id, name string, rarity game.Rarity, cost, attack, health int, cardType string, abilities ...game.Ability) game.CardPrototype {
	atk, hp := attack, health
	if abilities == nil {
		abilities = []game.Ability{}
	}
	return game.CardPrototype{
		ID:          id,
		Name:        name,
		Description: "card_" + id + "_desc",
		Cost:        cost,
		Rarity:      rarity,
		Attack:      &atk,
		Health:      &hp,
		Abilities:   abilities,
		CardType:    cardType,
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s_art/360/240", id),
	}
}

// DefaultCards returns the built-in card pool.
func DefaultCards() []game.CardPrototype {
	const (
		common    = game.RarityCommon
		rare      = game.RarityRare
		epic      = game.RarityEpic
		legendary = game.RarityLegendary
	)
	return []game.CardPrototype{
		minion("c001", "Noob Trader", common, 1, 1, 2, "Trader"),
		minion("c002", "Shill Bot", common, 2, 2, 1, "Bot"),
		minion("c003", "Doge Pup", common, 1, 1, 1, "Meme Coin"),
		minion("c004", "DeFi Degenerate", common, 3, 3, 3, "DeFi User"),
		minion("c005", "Chad Influencer", common, 2, 2, 2, "Influencer"),
		minion("c006", "Keyboard Warrior", common, 1, 1, 1, "DeFi User", taunt),
		minion("c007", "NFT Bro", common, 3, 3, 2, "Investor"),
		minion("c008", "Liquidity Farmer", common, 2, 1, 3, "DeFi User"),
		minion("c009", "NotCoin Tapper", common, 1, 0, 2, "Meme Coin",
			battlecry("card_c009_battlecry_desc", nil)),

		minion("r001", "Diamond Hands Holder", rare, 4, 2, 6, "Investor", taunt),
		minion("r002", "FOMO Buyer", rare, 2, 3, 2, "Trader", charge),
		minion("r003", "Community Mod", rare, 3, 1, 4, "Community Mod",
			ability(game.AbilityDivineShield, "cardability_divine_shield_full")),
		minion("r004", "Tapping Hamster", rare, 3, 2, 2, "Crypto Critter",
			battlecry("card_r004_battlecry_desc", &game.Effect{Kind: game.EffectDraw, Amount: 2})),
		minion("r005", "Telegram Channel Admin", rare, 4, 3, 3, "Community Mod", stealth),
		minion("r006", "Whale Watcher", rare, 2, 1, 1, "Trader",
			ability(game.AbilityAirdrop, "cardability_airdrop_full")),
		minion("r007", "Shitcoin Shaman", rare, 3, 2, 3, "Scammer",
			ability(game.AbilityDeathrattle, "card_r007_deathrattle_desc")),
		minion("r008", "Gigachad Dev", rare, 5, 3, 5, "Founder",
			ability(game.AbilityHODL, "cardability_hodl_full")),
		minion("r009", "Concerned Citizen", rare, 3, 1, 5, "Community Mod", taunt),

		minion("e001", "Smooth Scammer", epic, 5, 4, 4, "Scammer",
			battlecry("card_e001_battlecry_desc", &game.Effect{Kind: game.EffectSummon, CardID: "c002"})),
		minion("e002", "Rug Pull Rugrat", epic, 4, 2, 1, "Scammer",
			ability(game.AbilityDeathrattle, "card_e002_deathrattle_desc")),
		minion("e003", "The Zucc", epic, 6, 5, 5, "Visionary",
			battlecry("card_e003_battlecry_desc", nil)),
		minion("e004", "Captain Hindsight", epic, 4, 3, 3, "Influencer",
			ability(game.AbilitySilence, "cardability_silence_full_enemy")),
		minion("e005", "DeFi Chef", epic, 5, 4, 4, "DeFi User",
			battlecry("card_e005_battlecry_desc", nil)),
		minion("e006", "DAO Voter", epic, 2, 2, 1, "Investor",
			battlecry("card_e006_battlecry_desc", &game.Effect{Kind: game.EffectDraw, Amount: 1})),

		minion("l001", "Sleepy Joe King", legendary, 7, 6, 8, "Figurehead", taunt),
		minion("l002", "Elongated Muskrat", legendary, 8, 7, 7, "Visionary", charge),
		minion("l003", "Pavel Turov", legendary, 6, 5, 5, "Founder",
			battlecry("card_l003_battlecry_desc", &game.Effect{Kind: game.EffectBuffFriendly, Attack: 1, Health: 1})),
		minion("l004", "Donald Pump", legendary, 7, 6, 6, "Figurehead",
			battlecry("card_l004_battlecry_desc", nil)),
		minion("l005", "Vitalik's Ethereum Rainbow", legendary, 4, 2, 4, "Crypto Critter", stealth,
			ability(game.AbilityDeathrattle, "card_l005_deathrattle_desc")),
		minion("l006", `CZ "4"`, legendary, 8, 4, 4, "Founder",
			battlecry("card_l006_battlecry_desc", nil)),
		minion("l007", "The Hamster CEO", legendary, 5, 4, 4, "Visionary",
			battlecry("card_l007_battlecry_desc", nil)),
		minion("l008", "Giga Brain NotVatalik", legendary, 9, 7, 7, "Visionary",
			battlecry("card_l008_battlecry_desc", nil)),
		minion("l009", "Satoshi's Ghost", legendary, 3, 1, 1, "Founder", stealth,
			ability(game.AbilityDeathrattle, "card_l009_deathrattle_desc")),
	}
}
