package match

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// effectiveMinPower resolves the kingdom's power requirement. MinPower is
// the primary field; PowerRange is a legacy string field from an older
// data shape and is parsed as a plain integer. Unparsable or non-positive
// values mean the requirement is unset.
func (l *Listing) effectiveMinPower() float64 {
	if l.MinPower > 0 {
		return l.MinPower
	}
	n, err := strconv.Atoi(strings.TrimSpace(l.PowerRange))
	if err != nil || n <= 0 {
		return 0
	}
	return float64(n)
}

// scorePower maps player power against the kingdom minimum. Full credit
// at or above the minimum; between 80% and 100% of the minimum the score
// interpolates linearly from 0.5 to 1.0; below 80% it is half the ratio.
// Ratio 0.8 exactly lands in the upper branch and scores 0.5.
func scorePower(playerPower, minPower float64) factorScore {
	if minPower == 0 {
		return notApplicable()
	}
	if playerPower >= minPower {
		return applicable(1.0)
	}
	ratio := playerPower / minPower
	if ratio >= 0.8 {
		return applicable(0.5 + (ratio-0.8)*2.5)
	}
	return applicable(ratio * 0.5)
}

func explainPower(playerPower, minPower float64) string {
	if minPower == 0 {
		return ""
	}
	if playerPower >= minPower {
		return fmt.Sprintf("Your power %sM meets the %sM minimum", formatPower(playerPower), formatPower(minPower))
	}
	return fmt.Sprintf("Your power %sM is below the %sM minimum", formatPower(playerPower), formatPower(minPower))
}

func formatPower(millions float64) string {
	if millions == math.Trunc(millions) {
		return strconv.FormatFloat(millions, 'f', 0, 64)
	}
	return strconv.FormatFloat(millions, 'f', 1, 64)
}

// scoreTCLevel steps down with the distance below the required town
// center level: within 2 levels is still a near match, within 5 a weak
// one, further a miss.
func scoreTCLevel(playerTC, minTC int) factorScore {
	if minTC == 0 {
		return notApplicable()
	}
	if playerTC >= minTC {
		return applicable(1.0)
	}
	diff := minTC - playerTC
	switch {
	case diff <= 2:
		return applicable(0.7)
	case diff <= 5:
		return applicable(0.3)
	default:
		return applicable(0.0)
	}
}

func explainTCLevel(playerTC, minTC int) string {
	if minTC == 0 {
		return ""
	}
	if playerTC >= minTC {
		return fmt.Sprintf("Your TC level %d meets the minimum %d", playerTC, minTC)
	}
	return fmt.Sprintf("Your TC level %d is %d below the minimum %d", playerTC, minTC-playerTC, minTC)
}

// scoreLanguage is a strict priority cascade: the first matching tier
// wins and tiers are never blended. The kingdom's secondary list is
// curated, so a player's main language appearing there (0.8) outranks
// the kingdom's main language appearing in the player's informal
// secondary list (0.6). This asymmetry is intentional.
func scoreLanguage(profile *Profile, listing *Listing) factorScore {
	km := listing.MainLanguage
	if km == "" {
		return notApplicable()
	}
	pm := profile.MainLanguage
	if pm != "" && pm == km {
		return applicable(1.0)
	}
	if pm != "" && containsString(listing.SecondaryLanguages, pm) {
		return applicable(0.8)
	}
	if containsString(profile.SecondaryLanguages, km) {
		return applicable(0.6)
	}
	if overlapCount(profile.SecondaryLanguages, listing.SecondaryLanguages) > 0 {
		return applicable(0.3)
	}
	return applicable(0.0)
}

func explainLanguage(profile *Profile, listing *Listing) string {
	km := listing.MainLanguage
	if km == "" {
		return ""
	}
	pm := profile.MainLanguage
	switch {
	case pm != "" && pm == km:
		return fmt.Sprintf("You both speak %s as main language", km)
	case pm != "" && containsString(listing.SecondaryLanguages, pm):
		return fmt.Sprintf("Your main language %s is spoken in the kingdom", pm)
	case containsString(profile.SecondaryLanguages, km):
		return fmt.Sprintf("The kingdom's main language %s is one of yours", km)
	case overlapCount(profile.SecondaryLanguages, listing.SecondaryLanguages) > 0:
		return "You share a secondary language with the kingdom"
	default:
		return fmt.Sprintf("No common language with this %s-speaking kingdom", km)
	}
}

// scoreVibe rewards any overlap between the player's wanted tags and the
// kingdom's advertised culture tags: a single shared tag already counts
// as a meaningful partial match (floor above 0.5), full coverage of the
// smaller set saturates at 1.0.
func scoreVibe(lookingFor, kingdomVibe []string) factorScore {
	want := uniqueStrings(lookingFor)
	have := uniqueStrings(kingdomVibe)
	if len(want) == 0 || len(have) == 0 {
		return notApplicable()
	}
	overlap := overlapCount(want, have)
	if overlap == 0 {
		return applicable(0.0)
	}
	maxPossible := len(want)
	if len(have) < maxPossible {
		maxPossible = len(have)
	}
	return applicable(math.Min(1.0, 0.5+float64(overlap)/float64(maxPossible)*0.5))
}

func explainVibe(lookingFor, kingdomVibe []string) string {
	want := uniqueStrings(lookingFor)
	have := uniqueStrings(kingdomVibe)
	if len(want) == 0 || len(have) == 0 {
		return ""
	}
	overlap := overlapCount(want, have)
	if overlap == 0 {
		return "No culture tags in common"
	}
	return fmt.Sprintf("You share %d of %d culture tags", overlap, len(want))
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// overlapCount treats both slices as sets.
func overlapCount(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		if v != "" {
			set[v] = struct{}{}
		}
	}
	count := 0
	seen := make(map[string]struct{}, len(b))
	for _, v := range b {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if _, ok := set[v]; ok {
			count++
		}
	}
	return count
}

func uniqueStrings(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
