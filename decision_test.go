package gate

import (
	"context"
	"testing"

	"github.com/crealaunch/gate/policy"
	"github.com/crealaunch/gate/roles"
	"github.com/crealaunch/gate/sessions"
	"github.com/go-playground/errors/v5"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"
)

func TestGate_Evaluate(t *testing.T) {
	t.Parallel()

	type args struct {
		sess *sessions.Session
		path string
	}
	tests := []struct {
		name    string
		args    args
		options []Option
		prepare func(store *MockStore)
		want    Result
	}{
		{
			name: "no session on a protected path redirects to login",
			args: args{sess: nil, path: "/admin/dashboard"},
			want: Result{Decision: RedirectToLogin, Location: "/login"},
		},
		{
			name: "no session on a public path is allowed",
			args: args{sess: nil, path: "/pricing"},
			want: Result{Decision: Allow},
		},
		{
			name: "no session on the login path is allowed",
			args: args{sess: nil, path: "/login"},
			want: Result{Decision: Allow},
		},
		{
			name: "setter in the expert area is sent home",
			args: args{sess: &sessions.Session{Subject: "u-setter"}, path: "/expert/clients"},
			prepare: func(store *MockStore) {
				store.EXPECT().UserRole(gomock.Any(), "u-setter").Return("SETTER", nil)
			},
			want: Result{Decision: RedirectToArea, Location: "/setter", Role: roles.Setter},
		},
		{
			name: "admin is unrestricted across areas",
			args: args{sess: &sessions.Session{Subject: "u-admin"}, path: "/expert/clients"},
			prepare: func(store *MockStore) {
				store.EXPECT().UserRole(gomock.Any(), "u-admin").Return("ADMIN", nil)
			},
			want: Result{Decision: Allow, Role: roles.Admin},
		},
		{
			name: "closer inside its own area is allowed",
			args: args{sess: &sessions.Session{Subject: "u-closer"}, path: "/commercial/leads"},
			prepare: func(store *MockStore) {
				store.EXPECT().UserRole(gomock.Any(), "u-closer").Return("CLOSER", nil)
			},
			want: Result{Decision: Allow, Role: roles.Closer},
		},
		{
			name: "closer on the login path is sent to its area",
			args: args{sess: &sessions.Session{Subject: "u-closer"}, path: "/login"},
			prepare: func(store *MockStore) {
				store.EXPECT().UserRole(gomock.Any(), "u-closer").Return("CLOSER", nil)
			},
			want: Result{Decision: RedirectToArea, Location: "/commercial", Role: roles.Closer},
		},
		{
			name: "hos on the landing path is sent to its area",
			args: args{sess: &sessions.Session{Subject: "u-hos"}, path: "/dashboard"},
			prepare: func(store *MockStore) {
				store.EXPECT().UserRole(gomock.Any(), "u-hos").Return("HOS", nil)
			},
			want: Result{Decision: RedirectToArea, Location: "/hos", Role: roles.HOS},
		},
		{
			name: "role lookup failure degrades to the client area",
			args: args{sess: &sessions.Session{Subject: "u-broken"}, path: "/admin/dashboard"},
			prepare: func(store *MockStore) {
				store.EXPECT().UserRole(gomock.Any(), "u-broken").Return("", errors.New("connection refused"))
			},
			want: Result{Decision: RedirectToArea, Location: "/client", Role: roles.Client},
		},
		{
			name: "unknown stored role degrades to the client area",
			args: args{sess: &sessions.Session{Subject: "u-legacy"}, path: "/hos/reports"},
			prepare: func(store *MockStore) {
				store.EXPECT().UserRole(gomock.Any(), "u-legacy").Return("SUPERVISOR", nil)
			},
			want: Result{Decision: RedirectToArea, Location: "/client", Role: roles.Client},
		},
		{
			name: "authenticated caller on a public path is allowed without rerouting",
			args: args{sess: &sessions.Session{Subject: "u-expert"}, path: "/pricing"},
			prepare: func(store *MockStore) {
				store.EXPECT().UserRole(gomock.Any(), "u-expert").Return("EXPERT", nil)
			},
			want: Result{Decision: Allow, Role: roles.Expert},
		},
		{
			name:    "fail closed forces login on a protected path when lookup fails",
			args:    args{sess: &sessions.Session{Subject: "u-broken"}, path: "/admin/dashboard"},
			options: []Option{WithFailMode(FailClosed)},
			prepare: func(store *MockStore) {
				store.EXPECT().UserRole(gomock.Any(), "u-broken").Return("", errors.New("connection refused"))
			},
			want: Result{Decision: RedirectToLogin, Location: "/login"},
		},
		{
			name:    "fail closed keeps the login path reachable when lookup fails",
			args:    args{sess: &sessions.Session{Subject: "u-broken"}, path: "/login"},
			options: []Option{WithFailMode(FailClosed)},
			prepare: func(store *MockStore) {
				store.EXPECT().UserRole(gomock.Any(), "u-broken").Return("", errors.New("connection refused"))
			},
			want: Result{Decision: Allow, Role: roles.Client},
		},
		{
			name:    "fail closed keeps the landing path reachable when lookup fails",
			args:    args{sess: &sessions.Session{Subject: "u-broken"}, path: "/dashboard"},
			options: []Option{WithFailMode(FailClosed)},
			prepare: func(store *MockStore) {
				store.EXPECT().UserRole(gomock.Any(), "u-broken").Return("", errors.New("connection refused"))
			},
			want: Result{Decision: Allow, Role: roles.Client},
		},
		{
			name:    "fail closed leaves public paths reachable when lookup fails",
			args:    args{sess: &sessions.Session{Subject: "u-broken"}, path: "/pricing"},
			options: []Option{WithFailMode(FailClosed)},
			prepare: func(store *MockStore) {
				store.EXPECT().UserRole(gomock.Any(), "u-broken").Return("", errors.New("connection refused"))
			},
			want: Result{Decision: Allow, Role: roles.Client},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			store := NewMockStore(ctrl)
			if tt.prepare != nil {
				tt.prepare(store)
			}

			g := New(nil, store, tt.options...)
			got := g.Evaluate(context.Background(), tt.args.sess, tt.args.path)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Gate.Evaluate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// An unrestricted role is allowed under every protected area, never rerouted.
func TestGate_Evaluate_adminUnrestrictedEverywhere(t *testing.T) {
	t.Parallel()

	areas := policy.DefaultTable().Areas()

	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	store.EXPECT().UserRole(gomock.Any(), "u-admin").Return("ADMIN", nil).Times(len(areas))

	g := New(nil, store)
	sess := &sessions.Session{Subject: "u-admin"}

	for _, area := range areas {
		got := g.Evaluate(context.Background(), sess, area.String()+"/anything")
		if got.Decision != Allow {
			t.Errorf("Evaluate(%s) = %v, want %v", area, got.Decision, Allow)
		}
	}
}

// The decision must be a pure function of (session, path): evaluating the
// same request twice yields the same result.
func TestGate_Evaluate_deterministic(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	store.EXPECT().UserRole(gomock.Any(), "u-setter").Return("SETTER", nil).Times(2)

	g := New(nil, store)
	sess := &sessions.Session{Subject: "u-setter"}

	first := g.Evaluate(context.Background(), sess, "/expert/clients")
	second := g.Evaluate(context.Background(), sess, "/expert/clients")
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Gate.Evaluate() not deterministic (-first +second):\n%s", diff)
	}
}

func TestDecision_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		decision Decision
		want     string
	}{
		{name: "allow", decision: Allow, want: "allow"},
		{name: "redirect to login", decision: RedirectToLogin, want: "redirectToLogin"},
		{name: "redirect to area", decision: RedirectToArea, want: "redirectToArea"},
		{name: "unknown", decision: Decision(42), want: "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.decision.String(); got != tt.want {
				t.Errorf("Decision.String() = %v, want %v", got, tt.want)
			}
		})
	}
}
