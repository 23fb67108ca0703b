package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// Latin multiplicative adjectives used as rectification suffixes and article
// multipliers, in order: index i corresponds to ordinal i+2 (bis=2 … tricies=30).
var multiplicativeAdjectives = []string{
	"bis",
	"ter",
	"quater",
	"quinquies",
	"sexies",
	"septies",
	"octies",
	"nonies",
	"decies",
	"undecies",
	"duodecies",
	"terdecies",
	"quaterdecies",
	"quindecies",
	"sexdecies",
	"septdecies",
	"octodecies",
	"novodecies",
	"vicies",
	"unvicies",
	"duovicies",
	"tervicies",
	"quatervicies",
	"quinvicies",
	"sexvicies",
	"septvicies",
	"duodetrecies",
	"undetricies",
	"tricies",
}

var adjectiveOrdinals = func() map[string]int {
	m := make(map[string]int, len(multiplicativeAdjectives))
	for i, adj := range multiplicativeAdjectives {
		m[adj] = i + 2
	}
	return m
}()

// OrdinalSuffix returns the adjective for an ordinal between 2 and 30.
func OrdinalSuffix(ordinal int) (string, bool) {
	if ordinal < 2 || ordinal > len(multiplicativeAdjectives)+1 {
		return "", false
	}
	return multiplicativeAdjectives[ordinal-2], true
}

// OrdinalOfSuffix is the inverse of OrdinalSuffix.
func OrdinalOfSuffix(suffix string) (int, bool) {
	ord, ok := adjectiveOrdinals[suffix]
	return ord, ok
}

var numRe = regexp.MustCompile(`^(?P<prefix>[A-Z|-]*)(?P<num>\d+)(?P<rect> rect\.(?: (?P<suffix>\w+))?)?`)

// Second deliberation markers. Amendements carrying them share numbers with the
// first deliberation and cannot be tracked by number alone.
var secondDeliberationPrefixes = map[string]bool{"A-": true, "B-": true, "COORD-": true}

// ParseNum parses a raw amendement number such as "1545 rect. ter" into its
// number and rectification ordinal. An empty string parses as (0, 0).
func ParseNum(text string) (num int, rectif int, err error) {
	if text == "" {
		return 0, 0, nil
	}
	mo := numRe.FindStringSubmatch(text)
	if mo == nil {
		return 0, 0, fmt.Errorf("cannot parse amendement number %q", text)
	}
	prefix := mo[numRe.SubexpIndex("prefix")]
	if secondDeliberationPrefixes[prefix] {
		return 0, 0, fmt.Errorf("cannot parse amendement number %q (second deliberation)", text)
	}
	num, err = strconv.Atoi(mo[numRe.SubexpIndex("num")])
	if err != nil {
		return 0, 0, fmt.Errorf("cannot parse amendement number %q", text)
	}
	if mo[numRe.SubexpIndex("rect")] == "" {
		return num, 0, nil
	}
	suffix := mo[numRe.SubexpIndex("suffix")]
	if suffix == "" {
		return num, 1, nil
	}
	rectif, ok := adjectiveOrdinals[suffix]
	if !ok {
		return 0, 0, fmt.Errorf("cannot parse amendement number %q", text)
	}
	return num, rectif, nil
}

// NumDisp formats a (num, rectif) pair into its canonical display string,
// the inverse of ParseNum.
func NumDisp(num int, rectif int) string {
	text := strconv.Itoa(num)
	if rectif > 0 {
		text += " rect."
	}
	if rectif > 1 {
		suffix, ok := OrdinalSuffix(rectif)
		if !ok {
			suffix = strconv.Itoa(rectif)
		}
		text += " " + suffix
	}
	return text
}

func (a *Amendement) NumDisp() string {
	return NumDisp(a.Num, a.Rectif)
}
