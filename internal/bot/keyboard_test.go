package bot

import (
	"reflect"
	"testing"

	"github.com/benvon/diary-bot/internal/catalog"
)

func testTags(t *testing.T) []catalog.Tag {
	t.Helper()
	return []catalog.Tag{
		{ID: "work", Description: "Work_stuff"},
		{ID: "family", Description: "Family"},
		{ID: "health", Description: "Health-and-fitness"},
	}
}

func TestKeyboardLayout(t *testing.T) {
	t.Parallel()

	kb := Keyboard(testTags(t), nil)

	// Three tags at two per row -> two tag rows plus the Done row
	if len(kb.InlineKeyboard) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(kb.InlineKeyboard))
	}
	if len(kb.InlineKeyboard[0]) != 2 {
		t.Errorf("Expected 2 buttons in first row, got %d", len(kb.InlineKeyboard[0]))
	}
	if len(kb.InlineKeyboard[1]) != 1 {
		t.Errorf("Expected 1 button in second row, got %d", len(kb.InlineKeyboard[1]))
	}

	doneRow := kb.InlineKeyboard[2]
	if len(doneRow) != 1 {
		t.Fatalf("Expected single Done button in last row, got %d", len(doneRow))
	}
	if doneRow[0].Text != doneButtonText {
		t.Errorf("Expected Done label %q, got %q", doneButtonText, doneRow[0].Text)
	}
	if *doneRow[0].CallbackData != callbackDone {
		t.Errorf("Expected Done callback %q, got %q", callbackDone, *doneRow[0].CallbackData)
	}
}

func TestKeyboardLabelsAndData(t *testing.T) {
	t.Parallel()

	kb := Keyboard(testTags(t), nil)

	first := kb.InlineKeyboard[0][0]
	if first.Text != "Work stuff" {
		t.Errorf("Expected separators replaced by spaces, got %q", first.Text)
	}
	if *first.CallbackData != "tag:work" {
		t.Errorf("Expected callback data 'tag:work', got %q", *first.CallbackData)
	}

	third := kb.InlineKeyboard[1][0]
	if third.Text != "Health and fitness" {
		t.Errorf("Expected hyphens replaced by spaces, got %q", third.Text)
	}
}

func TestKeyboardSelectionMarker(t *testing.T) {
	t.Parallel()

	kb := Keyboard(testTags(t), map[string]bool{"family": true})

	selected := kb.InlineKeyboard[0][1]
	if selected.Text != selectedMarker+"Family" {
		t.Errorf("Expected selected marker prefix, got %q", selected.Text)
	}

	// Selection changes the label, never the callback data
	if *selected.CallbackData != "tag:family" {
		t.Errorf("Expected callback data 'tag:family', got %q", *selected.CallbackData)
	}

	unselected := kb.InlineKeyboard[0][0]
	if unselected.Text != "Work stuff" {
		t.Errorf("Expected unselected label without marker, got %q", unselected.Text)
	}
}

func TestKeyboardIsPure(t *testing.T) {
	t.Parallel()

	selected := map[string]bool{"work": true, "health": true}
	a := Keyboard(testTags(t), selected)
	b := Keyboard(testTags(t), selected)

	if !reflect.DeepEqual(a, b) {
		t.Error("Expected identical inputs to render identical keyboards")
	}
}

func TestKeyboardSingleTag(t *testing.T) {
	t.Parallel()

	kb := Keyboard([]catalog.Tag{{ID: "solo", Description: "Solo"}}, nil)
	if len(kb.InlineKeyboard) != 2 {
		t.Fatalf("Expected tag row plus Done row, got %d rows", len(kb.InlineKeyboard))
	}
	if len(kb.InlineKeyboard[0]) != 1 {
		t.Errorf("Expected 1 button in tag row, got %d", len(kb.InlineKeyboard[0]))
	}
}
