package identity

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/BitVault/BitVault-Backend/providers"
	"github.com/BitVault/BitVault-Backend/services/security"
	"github.com/BitVault/BitVault-Backend/utils"
	"github.com/google/uuid"
)

var ErrTokenAuthFailed = fmt.Errorf("token authentication failed")

// AuthProvider resolves opaque bearer tokens against the identity
// service. Tokens are never inspected locally; whatever account ID the
// identity service returns is trusted verbatim.
type AuthProvider struct {
	providers.BaseProvider
	config *IdentityConfig
	cache  *security.Cache
}

type IdentityConfig struct {
	AuthProviderName    string `mapstructure:"AUTH_PROVIDER_NAME"`
	AuthProviderBaseUrl string `mapstructure:"AUTH_PROVIDER_BASE_URL"`
}

func NewAuthProvider() *AuthProvider {

	var c IdentityConfig

	err := utils.LoadCustomConfig(utils.EnvPath, &c)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	cache := security.NewCache()
	if err := cache.Start(); err != nil {
		panic(fmt.Sprintf("Could not start token cache: %v", err))
	}

	name := c.AuthProviderName
	if name == "" {
		name = providers.Identity
	}

	return &AuthProvider{
		BaseProvider: providers.BaseProvider{
			Name:    name,
			BaseURL: c.AuthProviderBaseUrl,
			Client: &http.Client{
				Timeout: time.Second * 30,
			},
		},
		config: &c,
		cache:  cache,
	}
}

// This can be used to pull the `id` field from the authn response body.
type accountID struct {
	ID uuid.UUID `json:"id"`
}

// Resolve makes `GET <auth-provider>/authn` with the caller's bearer
// token and returns the account it belongs to.
func (p *AuthProvider) Resolve(token string) (uuid.UUID, error) {
	if v, err := p.cache.Get(token); err == nil {
		if id, ok := v.(uuid.UUID); ok {
			return id, nil
		}
	}

	headers := map[string]string{
		"Authorization": "Bearer " + token,
	}

	response, err := p.MakeRequest(http.MethodGet, fmt.Sprintf("%s/authn", p.BaseURL), nil, headers)
	if err != nil {
		return uuid.Nil, fmt.Errorf("token authentication request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return uuid.Nil, ErrTokenAuthFailed
	}

	var account accountID
	if err := json.NewDecoder(response.Body).Decode(&account); err != nil {
		return uuid.Nil, fmt.Errorf("unexpected authn response: %w", err)
	}

	p.cache.Insert(token, account.ID)

	return account.ID, nil
}
