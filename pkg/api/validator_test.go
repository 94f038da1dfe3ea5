package api

import "testing"

func TestDirectionPayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       DirectionPayload
		wantErr bool
	}{
		{"Right", DirectionPayload{Dx: 1}, false},
		{"Diagonal", DirectionPayload{Dx: -1, Dy: 1}, false},
		{"Zero", DirectionPayload{}, true},
		{"TooFar", DirectionPayload{Dx: 2}, true},
		{"TooFarY", DirectionPayload{Dy: -3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestItemPayload_Validate(t *testing.T) {
	if err := (ItemPayload{ItemID: "4294967296"}).Validate(); err != nil {
		t.Errorf("valid id rejected: %v", err)
	}
	if err := (ItemPayload{}).Validate(); err == nil {
		t.Error("empty id must be rejected")
	}
	if err := (ItemPayload{ItemID: "sword"}).Validate(); err == nil {
		t.Error("non-numeric id must be rejected")
	}
}

func TestPositionPayload_Validate(t *testing.T) {
	if err := (PositionPayload{X: 3, Y: 4}).Validate(); err != nil {
		t.Errorf("valid position rejected: %v", err)
	}
	if err := (PositionPayload{X: -1}).Validate(); err == nil {
		t.Error("negative position must be rejected")
	}
}
