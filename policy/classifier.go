package policy

// Classification is the route classifier's verdict for a single path.
type Classification struct {
	// Protected is set when the path falls under a protected area prefix.
	Protected bool

	// Area is the protected area the path falls under, when Protected.
	Area Area

	// Entry is set for the login path and the post-login landing path,
	// both of which redirect an authenticated caller to its canonical area.
	Entry bool
}

// Classifier buckets request paths against the fixed set of protected
// prefixes and the login/landing entry paths.
type Classifier struct {
	protected []Area
	loginPath string
	landing   string
}

// NewClassifier builds a Classifier over the given protected areas.
func NewClassifier(protected []Area, loginPath, landingPath string) Classifier {
	copied := make([]Area, len(protected))
	copy(copied, protected)

	return Classifier{
		protected: copied,
		loginPath: loginPath,
		landing:   landingPath,
	}
}

// DefaultClassifier returns the production classifier: the six protected
// areas, "/login" as the login path and "/dashboard" as the landing path.
func DefaultClassifier() Classifier {
	return NewClassifier(
		[]Area{AreaAdmin, AreaHOS, AreaCommercial, AreaSetter, AreaExpert, AreaClient},
		"/login",
		"/dashboard",
	)
}

// Classify buckets path. Empty or malformed paths match nothing and
// classify as public.
func (c Classifier) Classify(path string) Classification {
	if path == "" || path[0] != '/' {
		return Classification{}
	}

	// Entry paths are checked first so the verdict stays deterministic
	// even if a deployment configures a landing path inside an area.
	if path == c.loginPath || path == c.landing {
		return Classification{Entry: true}
	}

	for _, a := range c.protected {
		if a.Contains(path) {
			return Classification{Protected: true, Area: a}
		}
	}

	return Classification{}
}

// LoginPath returns the configured login path.
func (c Classifier) LoginPath() string {
	return c.loginPath
}

// LandingPath returns the configured post-login landing path.
func (c Classifier) LandingPath() string {
	return c.landing
}
