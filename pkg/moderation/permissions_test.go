package moderation

import "testing"

func testLadder() Ladder {
	return Ladder{"role-helper", "role-mod", "role-senior", "role-admin"}
}

func TestLevelHighestRoleOnly(t *testing.T) {
	ladder := testLadder()

	m := MemberSnapshot{UserID: "u1", RoleIDs: []string{"role-helper"}}
	if got := ladder.Level(m); got != TierHelper {
		t.Errorf("Level() = %v, want %v", got, TierHelper)
	}

	// Con varios roles de la escalera cuenta solo el más alto.
	m.RoleIDs = []string{"role-helper", "role-senior"}
	if got := ladder.Level(m); got != TierSeniorMod {
		t.Errorf("Level() = %v, want %v", got, TierSeniorMod)
	}

	m.RoleIDs = []string{"otro-rol"}
	if got := ladder.Level(m); got != TierNone {
		t.Errorf("Level() = %v, want %v", got, TierNone)
	}
}

func TestLevelIgnoresEmptyLadderEntries(t *testing.T) {
	ladder := Ladder{"", "role-mod", "", ""}
	m := MemberSnapshot{UserID: "u1", RoleIDs: []string{"role-mod"}}
	if got := ladder.Level(m); got != TierMod {
		t.Errorf("Level() = %v, want %v", got, TierMod)
	}
}

func TestAuthorizeOwnerBypass(t *testing.T) {
	ladder := testLadder()
	issuer := &MemberSnapshot{UserID: "owner", IsOwner: true, TopRolePosition: 0}
	target := &MemberSnapshot{UserID: "t", TopRolePosition: 99}

	d := Authorize(ladder, issuer, target, TierAdmin)
	if !d.Allowed {
		t.Errorf("el dueño siempre debe estar autorizado, got %+v", d)
	}
}

func TestAuthorizeInsufficientLevel(t *testing.T) {
	ladder := testLadder()
	issuer := &MemberSnapshot{UserID: "u1", RoleIDs: []string{"role-helper"}}

	d := Authorize(ladder, issuer, nil, TierAdmin)
	if d.Allowed || d.Reason != DenyInsufficientLevel {
		t.Errorf("Authorize() = %+v, want denied %s", d, DenyInsufficientLevel)
	}
}

func TestAuthorizeRoleHierarchy(t *testing.T) {
	ladder := testLadder()

	// Nivel suficiente pero rango no estrictamente superior al del objetivo.
	issuer := &MemberSnapshot{UserID: "u1", RoleIDs: []string{"role-admin"}, TopRolePosition: 5}
	target := &MemberSnapshot{UserID: "t", TopRolePosition: 5}

	d := Authorize(ladder, issuer, target, TierAdmin)
	if d.Allowed || d.Reason != DenyRoleHierarchy {
		t.Errorf("Authorize() = %+v, want denied %s", d, DenyRoleHierarchy)
	}

	// Sin objetivo resoluble no hay comparación de jerarquía.
	d = Authorize(ladder, issuer, nil, TierAdmin)
	if !d.Allowed {
		t.Errorf("Authorize() sin objetivo = %+v, want allowed", d)
	}
}

func TestAuthorizeNoIssuer(t *testing.T) {
	d := Authorize(testLadder(), nil, nil, TierHelper)
	if d.Allowed || d.Reason != DenyNoIssuer {
		t.Errorf("Authorize() = %+v, want denied %s", d, DenyNoIssuer)
	}
}

func TestAuthorizeIsPure(t *testing.T) {
	ladder := testLadder()
	issuer := &MemberSnapshot{UserID: "u1", RoleIDs: []string{"role-mod"}, TopRolePosition: 3}
	target := &MemberSnapshot{UserID: "t", TopRolePosition: 1}

	first := Authorize(ladder, issuer, target, TierMod)
	for i := 0; i < 50; i++ {
		if got := Authorize(ladder, issuer, target, TierMod); got != first {
			t.Fatalf("Authorize no es determinista: %+v != %+v", got, first)
		}
	}
	if !first.Allowed {
		t.Errorf("Authorize() = %+v, want allowed", first)
	}
}
