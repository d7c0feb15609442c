package services

import (
	"testing"

	"kasatakip/internal/testutil"
)

func TestCanAccess(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccessService(db)
		owner := testutil.CreateTestUser(t, db)
		safe := testutil.CreateTestSafe(t, db, owner.ID, "Ana Kasa")

		ok, err := svc.CanAccess(owner.ID, safe.ID)
		testutil.AssertNoError(t, err)
		if !ok {
			t.Error("expected owner to have access")
		}
	})

	t.Run("active_grant", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccessService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		safe := testutil.CreateTestSafe(t, db, owner.ID, "")
		testutil.GrantTestAccess(t, db, other.ID, safe.ID, true)

		ok, err := svc.CanAccess(other.ID, safe.ID)
		testutil.AssertNoError(t, err)
		if !ok {
			t.Error("expected grantee to have access")
		}
	})

	t.Run("inactive_grant_denied", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccessService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		safe := testutil.CreateTestSafe(t, db, owner.ID, "")
		testutil.GrantTestAccess(t, db, other.ID, safe.ID, false)

		ok, err := svc.CanAccess(other.ID, safe.ID)
		testutil.AssertNoError(t, err)
		if ok {
			t.Error("expected inactive grant to deny access")
		}

		_, err = svc.RequireAccess(other.ID, safe.ID)
		testutil.AssertAppError(t, err, "SAFE_ACCESS_DENIED")
	})

	t.Run("stranger_denied", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccessService(db)
		owner := testutil.CreateTestUser(t, db)
		stranger := testutil.CreateTestUser(t, db)
		safe := testutil.CreateTestSafe(t, db, owner.ID, "")

		ok, err := svc.CanAccess(stranger.ID, safe.ID)
		testutil.AssertNoError(t, err)
		if ok {
			t.Error("expected stranger to be denied")
		}
	})

	t.Run("missing_safe", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccessService(db)
		user := testutil.CreateTestUser(t, db)

		ok, err := svc.CanAccess(user.ID, "0190a9d6-0000-7000-8000-000000000000")
		testutil.AssertNoError(t, err)
		if ok {
			t.Error("expected missing safe to be inaccessible")
		}

		_, err = svc.RequireAccess(user.ID, "0190a9d6-0000-7000-8000-000000000000")
		testutil.AssertAppError(t, err, "SAFE_NOT_FOUND")
	})
}

func TestAccessibleSafes(t *testing.T) {
	t.Run("union_ordered_by_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccessService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		testutil.CreateTestSafe(t, db, user.ID, "Zeta")
		granted := testutil.CreateTestSafe(t, db, other.ID, "Alfa")
		testutil.GrantTestAccess(t, db, user.ID, granted.ID, true)
		revoked := testutil.CreateTestSafe(t, db, other.ID, "Beta")
		testutil.GrantTestAccess(t, db, user.ID, revoked.ID, false)
		testutil.CreateTestSafe(t, db, other.ID, "Gama")

		safes, err := svc.AccessibleSafes(user.ID)
		testutil.AssertNoError(t, err)
		if len(safes) != 2 {
			t.Fatalf("expected 2 safes, got %d", len(safes))
		}
		if safes[0].Name != "Alfa" || safes[1].Name != "Zeta" {
			t.Errorf("expected [Alfa Zeta], got [%s %s]", safes[0].Name, safes[1].Name)
		}
	})

	t.Run("owned_and_granted_listed_once", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccessService(db)
		user := testutil.CreateTestUser(t, db)
		safe := testutil.CreateTestSafe(t, db, user.ID, "Kasa")
		// a grant on one's own safe must not duplicate it
		testutil.GrantTestAccess(t, db, user.ID, safe.ID, true)

		safes, err := svc.AccessibleSafes(user.ID)
		testutil.AssertNoError(t, err)
		if len(safes) != 1 {
			t.Fatalf("expected 1 safe, got %d", len(safes))
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccessService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestSafe(t, db, user.ID, "B")
		testutil.CreateTestSafe(t, db, user.ID, "A")

		first, err := svc.AccessibleSafes(user.ID)
		testutil.AssertNoError(t, err)
		second, err := svc.AccessibleSafes(user.ID)
		testutil.AssertNoError(t, err)

		if len(first) != len(second) {
			t.Fatalf("expected same length, got %d and %d", len(first), len(second))
		}
		for i := range first {
			if first[i].ID != second[i].ID {
				t.Errorf("position %d differs: %s vs %s", i, first[i].ID, second[i].ID)
			}
		}
	})

	t.Run("none", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccessService(db)
		user := testutil.CreateTestUser(t, db)

		safes, err := svc.AccessibleSafes(user.ID)
		testutil.AssertNoError(t, err)
		if len(safes) != 0 {
			t.Errorf("expected no safes, got %d", len(safes))
		}
	})
}

func TestRequireOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAccessService(db)
	owner := testutil.CreateTestUser(t, db)
	grantee := testutil.CreateTestUser(t, db)
	safe := testutil.CreateTestSafe(t, db, owner.ID, "")
	testutil.GrantTestAccess(t, db, grantee.ID, safe.ID, true)

	t.Run("owner", func(t *testing.T) {
		got, err := svc.RequireOwner(owner.ID, safe.ID)
		testutil.AssertNoError(t, err)
		if got.ID != safe.ID {
			t.Errorf("expected safe %s, got %s", safe.ID, got.ID)
		}
	})

	t.Run("grantee_is_not_owner", func(t *testing.T) {
		_, err := svc.RequireOwner(grantee.ID, safe.ID)
		testutil.AssertAppError(t, err, "NOT_SAFE_OWNER")
	})
}
