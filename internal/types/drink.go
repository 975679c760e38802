package types

import "fmt"

type DrinkType struct {
	ID       uint8
	Label    string
	Sweet    bool
	ImageRef string
}

func (d DrinkType) IsNone() bool   { return d.ID == 0 }
func (d DrinkType) String() string { return d.Label }

var (
	DrinkNone      = DrinkType{0, "None", false, ""}
	DrinkEspresso  = DrinkType{1, "Espresso", true, "coffee2.jpg"}
	DrinkLongo     = DrinkType{2, "Longo", true, "coffee3.jpg"}
	DrinkAmericano = DrinkType{3, "Americano", true, "coffee4.jpg"}
	DrinkMacchiato = DrinkType{4, "Macchiato", true, "coffee3.jpg"}
	DrinkLatte     = DrinkType{5, "Latte", true, "coffee9.jpg"}
	DrinkHazelnut  = DrinkType{6, "Hazelnut coffee", true, "coffee1.jpg"}
	DrinkChocolate = DrinkType{7, "Chocolate", true, "coffee10.jpg"}
	DrinkWater     = DrinkType{8, "Water", false, "coffee7.jpg"}
	DrinkTea       = DrinkType{9, "Tea", true, "the.jpg"}
)

// Drinks lists selectable drinks in carousel order, NONE excluded.
func Drinks() []DrinkType {
	return []DrinkType{
		DrinkEspresso, DrinkLongo, DrinkAmericano, DrinkMacchiato, DrinkLatte,
		DrinkHazelnut, DrinkChocolate, DrinkWater, DrinkTea,
	}
}

func DrinkByID(id uint8) (DrinkType, bool) {
	for _, d := range Drinks() {
		if d.ID == id {
			return d, true
		}
	}
	return DrinkNone, false
}

// Sugar levels: 0 is "no sugar", bar zones 0..4 commit 1..5.
const (
	SugarNone = 0
	SugarMax  = 5
)

type Selection struct {
	Drink DrinkType
	Sugar int
}

func (s Selection) String() string {
	if !s.Drink.Sweet {
		return s.Drink.Label
	}
	return fmt.Sprintf("%s sugar=%d", s.Drink.Label, s.Sugar)
}

// Session is the not yet finalized order of one customer.
// Empty session stands for the initial "nothing chosen yet" placeholder.
type Session struct {
	items []Selection
}

func (s *Session) Reset()                  { s.items = s.items[:0] }
func (s *Session) Len() int                { return len(s.items) }
func (s *Session) Selections() []Selection { return append([]Selection(nil), s.items...) }

// Add appends validated drink, NONE is refused.
func (s *Session) Add(d DrinkType) bool {
	if d.IsNone() {
		return false
	}
	s.items = append(s.items, Selection{Drink: d})
	return true
}

func (s *Session) Last() (Selection, bool) {
	if len(s.items) == 0 {
		return Selection{}, false
	}
	return s.items[len(s.items)-1], true
}

// SetLastSugar writes sugar into last selection. Non-sweet drinks always keep 0.
func (s *Session) SetLastSugar(sugar int) bool {
	if len(s.items) == 0 {
		return false
	}
	last := &s.items[len(s.items)-1]
	if !last.Drink.Sweet {
		last.Sugar = SugarNone
		return false
	}
	if sugar < SugarNone {
		sugar = SugarNone
	} else if sugar > SugarMax {
		sugar = SugarMax
	}
	last.Sugar = sugar
	return true
}
