package store

// Collection keys.
const (
	KeyUsers      = "logimart_users"
	KeyProducts   = "logimart_products"
	KeyOrders     = "logimart_orders"
	KeyCategories = "logimart_categories"
	KeySequences  = "logimart_sequences"
)

// Cart and session keys.
const (
	KeyCartItems       = "cartItems"
	KeyAuthUser        = "authUser"
	KeyIsLoggedIn      = "isLoggedIn"
	KeyUserEmail       = "userEmail"
	KeyUserName        = "userName"
	KeyRememberedEmail = "rememberedEmail"
	KeySessionToken    = "sessionToken"
)

// CollectionKeys are the keys Reset removes before reseeding.
var CollectionKeys = []string{KeyUsers, KeyProducts, KeyOrders, KeyCategories, KeySequences}

// CartKey is the cart key for a profile. The default profile uses the bare key.
func CartKey(profile string) string {
	if profile == "" || profile == "default" {
		return KeyCartItems
	}
	return KeyCartItems + ":" + profile
}
