package tool

import (
	"context"
	"testing"

	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
)

func TestAuthenticateUserRegistersNewUser(t *testing.T) {
	t.Parallel()

	repo := seededRepo()
	st := statex.NewSessionState("s", testNow())

	env := newTestToolbox(repo).AuthenticateUser(context.Background(), st, "Ravi Kumar", "+919876543210")
	if !env.OK() || env.Message != "Welcome Ravi! You're now authenticated." {
		t.Fatalf("AuthenticateUser() = %+v", env)
	}
	if len(repo.users) != 2 || repo.users[1].FullName != "Ravi Kumar" {
		t.Fatalf("users = %+v", repo.users)
	}
	if !st.UserAuthenticated || st.UserName != "Ravi" || st.UserContact != "+919876543210" {
		t.Fatalf("session = %+v", st)
	}
}

func TestAuthenticateUserKnownContact(t *testing.T) {
	t.Parallel()

	repo := seededRepo()
	st := statex.NewSessionState("s", testNow())

	env := newTestToolbox(repo).AuthenticateUser(context.Background(), st, "Asha Rao", "asha@example.com")
	if !env.OK() {
		t.Fatalf("AuthenticateUser() = %+v", env)
	}
	if len(repo.users) != 1 {
		t.Fatalf("users = %d, want existing user reused", len(repo.users))
	}
	if st.UserName != "Asha" {
		t.Fatalf("user_name = %q", st.UserName)
	}
}

func TestAuthenticateUserMissingFields(t *testing.T) {
	t.Parallel()

	st := statex.NewSessionState("s", testNow())
	env := newTestToolbox(seededRepo()).AuthenticateUser(context.Background(), st, "Asha", " ")
	if env.OK() || env.ErrorMessage != "Name or contact information was not provided." {
		t.Fatalf("AuthenticateUser() = %+v", env)
	}
	if st.UserAuthenticated {
		t.Fatalf("session authenticated without contact")
	}
}
