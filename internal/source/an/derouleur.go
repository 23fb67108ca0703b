package an

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"amendement_fetcher/internal/domain"
)

// derouleurXML is the liste.xml document giving the discussion order.
type derouleurXML struct {
	XMLName     xml.Name            `xml:"amdtsParOrdreDeDiscussion"`
	Amendements []discussionItemXML `xml:"amendements>amendement"`
}

type discussionItemXML struct {
	Numero              string `xml:"numero,attr"`
	DiscussionCommune   string `xml:"discussionCommune,attr"`
	DiscussionIdentique string `xml:"discussionIdentique,attr"`
}

func (item discussionItemXML) idDiscussionCommune() *int64 {
	return parseOptionalID(item.DiscussionCommune)
}

func (item discussionItemXML) idIdentique() *int64 {
	return parseOptionalID(item.DiscussionIdentique)
}

func parseOptionalID(value string) *int64 {
	if value == "" {
		return nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

var numInListeRe = regexp.MustCompile(`(?P<acronyme>[A-Z]*)(?P<num>\d+)`)

func parseNumInListe(numLong string) (prefix string, num int, err error) {
	mo := numInListeRe.FindStringSubmatch(numLong)
	if mo == nil {
		return "", 0, fmt.Errorf("cannot parse amendement number %q", numLong)
	}
	num, err = strconv.Atoi(mo[numInListeRe.SubexpIndex("num")])
	if err != nil {
		return "", 0, err
	}
	return mo[numInListeRe.SubexpIndex("acronyme")], num, nil
}

// derouleurData wraps the decoded discussion list for one lecture.
type derouleurData struct {
	lecture *domain.Lecture
	items   []discussionItemXML
}

func decodeDerouleur(lecture *domain.Lecture, content []byte) (*derouleurData, error) {
	var doc derouleurXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("decode derouleur xml: %w", err)
	}
	return &derouleurData{lecture: lecture, items: doc.Amendements}, nil
}

func (d *derouleurData) discussionItems() []discussionItemXML {
	return d.items
}

func (d *derouleurData) discussionNums() map[int]bool {
	nums := make(map[int]bool, len(d.items))
	for _, item := range d.items {
		if _, num, err := parseNumInListe(item.Numero); err == nil {
			nums[num] = true
		}
	}
	return nums
}

// findPrefix returns the amendement number prefix in use, taken from the
// first discussed item when there is one, falling back to the organe table.
func (d *derouleurData) findPrefix() string {
	if len(d.items) > 0 {
		if prefix, _, err := parseNumInListe(d.items[0].Numero); err == nil {
			return prefix
		}
	}
	return prefixForOrgane(d.lecture.OrganeAbrev)
}

// triAmendement pairs the sort key from the per-amendement XML with the num.
type triAmendement struct {
	tri string
	num int
}

// updatedAmendementPositions computes the position delta between the current
// lecture order and the order given by the triAmendement sort keys. Nums that
// vanished from the remote data but hold a position about to be reassigned
// are nulled out.
func (d *derouleurData) updatedAmendementPositions(tris []triAmendement) map[int]*int {
	positionChanges := make(map[int]*int)

	currentOrder := make(map[int]*int, len(d.lecture.Amendements))
	for _, amendement := range d.lecture.Amendements {
		currentOrder[amendement.Num] = amendement.Position
	}

	ordered := make([]triAmendement, len(tris))
	copy(ordered, tris)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].tri != ordered[j].tri {
			return ordered[i].tri < ordered[j].tri
		}
		return ordered[i].num < ordered[j].num
	})

	newOrder := make(map[int]int, len(ordered))
	for i, tri := range ordered {
		newOrder[tri.num] = i + 1
	}

	for num, pos := range newOrder {
		current, known := currentOrder[num]
		if !known || current == nil || *current != pos {
			position := pos
			positionChanges[num] = &position
		}
	}

	assigned := make(map[int]bool, len(positionChanges))
	for _, position := range positionChanges {
		if position != nil {
			assigned[*position] = true
		}
	}
	for num, position := range currentOrder {
		if position == nil {
			continue
		}
		if _, moved := positionChanges[num]; moved {
			continue
		}
		if assigned[*position] {
			positionChanges[num] = nil
		}
	}

	return positionChanges
}

func uniqueTris(tris []triAmendement) []triAmendement {
	seen := make(map[triAmendement]bool, len(tris))
	unique := make([]triAmendement, 0, len(tris))
	for _, tri := range tris {
		if seen[tri] {
			continue
		}
		seen[tri] = true
		unique = append(unique, tri)
	}
	return unique
}
