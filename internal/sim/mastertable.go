package sim

// Master at Arms is a balancing proposal from Sirius (Jan Klingele) for
// Tim-Host fighter combat, reconstructed here from the two lookup
// tables captured verbatim in run.cpp. It corrects the fighter-
// intercept imbalance caused by Tim-Host's biased random number
// generator and applies only to carrier/carrier fights.

// masterBonusFightersX10 gives the average bonus-fighter count times
// 10, indexed [right.IsPlanet()][effectiveRightBays+1][effectiveLeftBays+1].
var masterBonusFightersX10 = [2][15][15]uint8{
	{
		{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2},
		{3, 3, 3, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7},
		{4, 7, 9, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19},
		{4, 7, 9, 21, 19, 24, 26, 26, 27, 27, 27, 27, 27, 27, 27},
		{4, 7, 9, 21, 26, 35, 38, 40, 40, 40, 40, 40, 40, 40, 40},
		{4, 7, 9, 25, 33, 40, 44, 48, 52, 53, 53, 53, 53, 53, 53},
		{4, 7, 9, 25, 34, 45, 50, 52, 56, 58, 61, 64, 64, 64, 64},
		{4, 7, 9, 25, 37, 50, 54, 58, 62, 64, 67, 72, 75, 75, 75},
		{4, 7, 9, 25, 37, 53, 60, 66, 69, 73, 75, 78, 82, 82, 82},
		{4, 7, 9, 25, 37, 53, 63, 69, 71, 76, 79, 82, 86, 89, 90},
		{4, 7, 9, 25, 37, 53, 63, 71, 74, 78, 82, 86, 94, 95, 96},
		{4, 7, 9, 25, 37, 53, 63, 71, 80, 82, 84, 89, 98, 99, 100},
		{4, 7, 9, 25, 38, 53, 63, 71, 80, 85, 89, 93, 99, 101, 104},
		{4, 7, 9, 25, 38, 53, 63, 71, 80, 85, 89, 94, 99, 102, 106},
	},
	{
		{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{2, 2, 2, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4},
		{2, 4, 5, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10},
		{2, 4, 5, 11, 10, 12, 13, 13, 14, 14, 14, 14, 14, 14, 14},
		{2, 4, 5, 11, 13, 18, 19, 20, 20, 20, 20, 20, 20, 20, 20},
		{2, 4, 5, 13, 17, 20, 22, 24, 26, 27, 27, 27, 27, 27, 27},
		{2, 4, 5, 13, 17, 23, 25, 26, 28, 29, 31, 32, 32, 32, 32},
		{2, 4, 5, 13, 19, 25, 27, 29, 31, 32, 34, 36, 38, 38, 38},
		{2, 4, 5, 13, 19, 27, 30, 33, 35, 37, 38, 39, 41, 41, 41},
		{2, 4, 5, 13, 19, 27, 32, 35, 36, 38, 40, 41, 43, 45, 45},
		{2, 4, 5, 13, 19, 27, 32, 36, 37, 39, 41, 43, 47, 48, 48},
		{2, 4, 5, 13, 19, 27, 32, 36, 40, 41, 42, 45, 49, 50, 50},
		{2, 4, 5, 13, 19, 27, 32, 36, 40, 43, 45, 47, 50, 51, 52},
		{2, 4, 5, 13, 19, 27, 32, 36, 40, 43, 45, 47, 50, 51, 53},
	},
}

// masterBonusBaysX100 gives the average bonus-bay count times 100,
// indexed the same way as masterBonusFightersX10.
var masterBonusBaysX100 = [2][15][15]uint8{
	{
		{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2},
		{2, 2, 2, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5},
		{3, 5, 7, 14, 14, 14, 14, 14, 14, 14, 14, 14, 14, 14, 14},
		{3, 5, 7, 16, 14, 18, 20, 20, 20, 20, 20, 20, 20, 20, 20},
		{3, 5, 7, 16, 20, 27, 29, 30, 30, 30, 30, 30, 30, 30, 30},
		{3, 6, 7, 20, 26, 32, 35, 38, 41, 42, 42, 42, 42, 42, 42},
		{4, 7, 9, 24, 33, 43, 48, 50, 54, 56, 59, 62, 62, 62, 62},
		{5, 8, 10, 28, 42, 57, 61, 66, 71, 73, 76, 82, 85, 85, 85},
		{5, 9, 12, 33, 49, 70, 79, 87, 91, 96, 99, 103, 108, 108, 108},
		{6, 10, 13, 37, 55, 79, 94, 103, 106, 114, 118, 123, 129, 133, 135},
		{7, 12, 15, 42, 62, 89, 106, 120, 125, 131, 138, 145, 158, 160, 162},
		{8, 13, 17, 47, 69, 99, 118, 133, 150, 154, 158, 167, 184, 186, 188},
		{8, 15, 19, 52, 79, 110, 131, 147, 166, 176, 185, 193, 205, 209, 216},
		{9, 16, 21, 57, 87, 121, 144, 162, 182, 194, 203, 214, 226, 232, 241},
	},
	{
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 1, 2, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4},
		{1, 1, 2, 4, 4, 4, 5, 5, 5, 6, 6, 6, 6, 6, 6},
		{1, 1, 2, 4, 5, 7, 8, 8, 8, 8, 8, 8, 8, 8, 8},
		{1, 2, 2, 6, 8, 9, 10, 11, 12, 12, 12, 12, 12, 12, 12},
		{1, 2, 3, 7, 10, 13, 14, 15, 16, 17, 17, 18, 18, 18, 18},
		{1, 2, 3, 8, 12, 17, 18, 20, 21, 22, 23, 24, 25, 25, 25},
		{2, 3, 4, 10, 14, 21, 23, 26, 27, 29, 29, 30, 32, 32, 32},
		{2, 3, 4, 11, 16, 24, 28, 31, 32, 34, 35, 37, 38, 40, 40},
		{2, 4, 5, 13, 19, 27, 32, 36, 37, 39, 41, 43, 47, 48, 48},
		{2, 4, 5, 14, 21, 30, 35, 40, 45, 46, 47, 50, 55, 55, 56},
		{2, 4, 6, 16, 24, 33, 39, 44, 50, 53, 55, 58, 61, 63, 64},
		{3, 5, 6, 17, 26, 36, 43, 49, 55, 58, 61, 64, 68, 70, 72},
	},
}

func clampIndex(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// applyMasterBonus balances a carrier/carrier fight per SPEC_FULL.md
// §4.7.3, folding a bay and a fighter bonus onto the right-hand object.
// A no-op unless both sides carry fighter bays.
func applyMasterBonus(left, right *CombatObject, result *Result, opts Configuration, rng RandomNumberGenerator) {
	if left.NumBays == 0 || right.NumBays == 0 {
		return
	}

	eleft := left.FighterAmmo - 2*right.NumBeams
	eright := right.FighterAmmo - 2*left.NumBeams
	if left.Shield >= 100 {
		eright -= left.NumBeams
	}
	if right.Shield >= 100 {
		eleft -= right.NumBeams
	}

	maxEf := eleft
	if eright < maxEf {
		maxEf = eright
	}
	if maxEf < 0 {
		maxEf = 0
	}
	maxBonus := (maxEf*14 + 5) / 10

	eleft = left.NumBays - (right.NumBeams+2)/5 + 1
	eright = right.NumBays - (left.NumBeams+2)/5 + 1
	eleft = clampIndex(eleft, 0, 14)
	eright = clampIndex(eright, 0, 14)

	planetIdx := 0
	if right.IsPlanet() {
		planetIdx = 1
	}
	bonusBays100 := int(masterBonusBaysX100[planetIdx][eright][eleft])
	bonusFighters10 := int(masterBonusFightersX10[planetIdx][eright][eleft])
	if bonusFighters10 > maxBonus {
		bonusFighters10 = maxBonus
	}

	right.NumBays += bonusBays100 / 100
	right.FighterAmmo += bonusFighters10 / 10

	if opts.SeedControl {
		if result.AddSeries(2) != 0 {
			right.NumBays++
			result.ThisBattleWeight *= int32(bonusBays100 % 100)
		} else {
			result.ThisBattleWeight *= int32(100 - bonusBays100%100)
		}
		result.TotalBattleWeight *= 100

		if result.AddSeries(2) != 0 {
			right.FighterAmmo++
			result.ThisBattleWeight *= int32(bonusFighters10 % 10)
		} else {
			result.ThisBattleWeight *= int32(10 - bonusFighters10%10)
		}
		result.TotalBattleWeight *= 10
	} else {
		if rng.Next(100) < bonusBays100%100 {
			right.NumBays++
		}
		if rng.Next(10) < bonusFighters10%10 {
			right.FighterAmmo++
		}
	}
}
