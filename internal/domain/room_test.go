package domain

import "testing"

func TestRoomDataPersons(t *testing.T) {
	tests := []struct {
		name    string
		singles *int
		doubles *int
		want    int
	}{
		{"both nil", nil, nil, 0},
		{"singles nil", nil, intPtr(2), 0},
		{"doubles nil", intPtr(2), nil, 0},
		{"one single one double", intPtr(1), intPtr(1), 3},
		{"two singles two doubles", intPtr(2), intPtr(2), 6},
		{"zero beds", intPtr(0), intPtr(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd := &RoomData{SingleBeds: tt.singles, DoubleBeds: tt.doubles}
			if got := rd.Persons(); got != tt.want {
				t.Errorf("Persons() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseRoomCategory(t *testing.T) {
	for _, valid := range []string{"economy", "standard", "deluxe", "luxe"} {
		if _, ok := ParseRoomCategory(valid); !ok {
			t.Errorf("ParseRoomCategory(%q) not accepted", valid)
		}
	}
	for _, invalid := range []string{"", "Economy", "presidential"} {
		if _, ok := ParseRoomCategory(invalid); ok {
			t.Errorf("ParseRoomCategory(%q) accepted", invalid)
		}
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryLuxe.Label(); got != "Luxe" {
		t.Errorf("Label() = %q, want Luxe", got)
	}
	if got := CategoryEconomy.Label(); got != "Economy" {
		t.Errorf("Label() = %q, want Economy", got)
	}
}
