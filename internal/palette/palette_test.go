package palette

import "testing"

func TestColor_KnownCategory(t *testing.T) {
	if got := Color("food"); got != "#F97316" {
		t.Errorf("Color(food) = %s, want #F97316", got)
	}
}

func TestColor_UnknownFallsBackToOther(t *testing.T) {
	if got := Color("spaceships"); got != CategoryColors["other"] {
		t.Errorf("Color(spaceships) = %s, want the 'other' color", got)
	}
}

func TestEveryCategoryHasAColor(t *testing.T) {
	categories := []string{
		"food", "transport", "entertainment", "utilities",
		"housing", "shopping", "health", "education", "other",
	}
	for _, cat := range categories {
		if _, ok := CategoryColors[cat]; !ok {
			t.Errorf("category %s has no color", cat)
		}
	}
}
