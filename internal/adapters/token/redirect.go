package token

import "github.com/ghollosi/next-sub004/internal/domain/identity"

// redirectTargets is the fixed, total mapping from account kind to the
// post-login destination. Informational only, not a security boundary.
var redirectTargets = map[identity.Kind]string{
	identity.KindPlatformOperator: "/admin",
	identity.KindTenantAdmin:      "/dashboard",
	identity.KindLocationStaff:    "/location",
	identity.KindPartnerContact:   "/partner",
	identity.KindCustomer:         "/app",
}

// RedirectTarget returns the post-login destination for a kind. Every
// enumerated kind has a mapping; anything else lands on the root.
func RedirectTarget(k identity.Kind) string {
	if target, ok := redirectTargets[k]; ok {
		return target
	}
	return "/"
}
