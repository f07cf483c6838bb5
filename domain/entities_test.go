package domain

import "testing"

type testResource struct{ owner uint }

func (r testResource) OwnerID() uint { return r.owner }

func TestAbilityCan(t *testing.T) {
	ability := &Ability{
		UserID: 7,
		Rules: []AbilityRule{
			{Action: "read", Subject: "user"},
			{Action: "create", Subject: "group"},
			{Action: "update", Subject: "group", OwnOnly: true},
		},
	}

	tests := []struct {
		name    string
		action  string
		subject string
		want    bool
	}{
		{"granted action", "read", "user", true},
		{"granted own-only action", "update", "group", true},
		{"other subject", "read", "group", false},
		{"other action", "delete", "user", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ability.Can(tt.action, tt.subject); got != tt.want {
				t.Errorf("Can(%s, %s) = %v, want %v", tt.action, tt.subject, got, tt.want)
			}
		})
	}
}

func TestAbilityCanResource(t *testing.T) {
	ability := &Ability{
		UserID: 7,
		Rules: []AbilityRule{
			{Action: "read", Subject: "user", OwnOnly: true},
			{Action: "list", Subject: "user"},
		},
	}

	tests := []struct {
		name     string
		action   string
		subject  string
		resource Ownable
		want     bool
	}{
		{"own resource", "read", "user", testResource{owner: 7}, true},
		{"someone else's resource", "read", "user", testResource{owner: 9}, false},
		{"unscoped rule ignores ownership", "list", "user", testResource{owner: 9}, true},
		{"no rule at all", "delete", "user", testResource{owner: 7}, false},
		{"own-only with nil resource", "read", "user", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ability.CanResource(tt.action, tt.subject, tt.resource); got != tt.want {
				t.Errorf("CanResource(%s, %s) = %v, want %v", tt.action, tt.subject, got, tt.want)
			}
		})
	}
}

func TestAnonymousAbilityGrantsNothing(t *testing.T) {
	ability := &Ability{}
	if ability.Can("read", "user") {
		t.Error("empty ability must not grant anything")
	}
	if ability.CanResource("read", "user", testResource{owner: 0}) {
		t.Error("empty ability must not grant resource access")
	}
}
