package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
	storex "github.com/tanpawarit/Chative-Travel-Assistant/agent/store"
)

// AuthenticateUser looks the user up by contact, registering them on first
// sight, and marks the session authenticated. It is the only handler that sets
// the authenticated flag.
func (t *Toolbox) AuthenticateUser(ctx context.Context, st *statex.SessionState, name, contact string) contractx.Envelope {
	return t.run(ctx, ToolAuthenticateUser, func(ctx context.Context) contractx.Envelope {
		repo, env, ok := t.repository(ctx, ToolAuthenticateUser)
		if !ok {
			return env
		}

		name = strings.TrimSpace(name)
		contact = strings.TrimSpace(contact)
		if name == "" || contact == "" || st == nil {
			return contractx.Failure("Name or contact information was not provided.")
		}

		_, err := repo.FindUserByContact(ctx, contact)
		switch {
		case errors.Is(err, storex.ErrNotFound):
			if err := repo.CreateUser(ctx, &storex.User{FullName: name, Contact: contact}); err != nil {
				return t.queryFailure(ToolAuthenticateUser, "A system error occurred during authentication", err)
			}
		case err != nil:
			return t.queryFailure(ToolAuthenticateUser, "A system error occurred during authentication", err)
		}

		displayName := strings.Fields(name)[0]
		st.Authenticate(displayName, contact)
		return contractx.Envelope{
			Status:  contractx.StatusSuccess,
			Message: fmt.Sprintf("Welcome %s! You're now authenticated.", displayName),
			Data:    map[string]any{"user_name": displayName},
		}
	})
}
