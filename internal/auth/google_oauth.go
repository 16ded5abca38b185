package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	googleAuthEndpoint     = "https://accounts.google.com/o/oauth2/auth"
	googleTokenEndpoint    = "https://oauth2.googleapis.com/token"
	googleUserInfoEndpoint = "https://www.googleapis.com/oauth2/v3/userinfo"

	// Googleへの外部呼び出しに適用するタイムアウト。
	googleRequestTimeout = 10 * time.Second
)

// GoogleOAuthConfig はGoogle OAuthプロバイダーの設定。
// ClientID/ClientSecret/RedirectURLは運用側の設定値であり、
// ユーザー入力が混ざることはない。
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// エンドポイントのオーバーライド。テストでhttptestサーバーを
	// 指すために使い、空の場合はGoogleの本番エンドポイントを使う。
	AuthURL     string
	TokenURL    string
	UserInfoURL string

	// HTTPClient は外部APIの呼び出しに使うクライアント。
	// nilの場合はタイムアウト付きのデフォルトクライアントを使う。
	HTTPClient *http.Client
}

// GoogleOAuthProvider はGoogle OAuth 2.0によるログインを提供する。
// ここで取得するsub/email/nameは、初回ログイン時のプロフィール自動作成
// （profiles + identitiesの同時作成）の入力になる。
type GoogleOAuthProvider struct {
	config GoogleOAuthConfig
	client *http.Client
}

// NewGoogleOAuthProvider はGoogleOAuthProviderを生成する。
func NewGoogleOAuthProvider(config GoogleOAuthConfig) *GoogleOAuthProvider {
	if config.AuthURL == "" {
		config.AuthURL = googleAuthEndpoint
	}
	if config.TokenURL == "" {
		config.TokenURL = googleTokenEndpoint
	}
	if config.UserInfoURL == "" {
		config.UserInfoURL = googleUserInfoEndpoint
	}
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: googleRequestTimeout}
	}
	return &GoogleOAuthProvider{config: config, client: client}
}

// GetLoginURL はGoogle OAuthの認証URLを生成する。
// stateはハンドラー側がCookieと突き合わせて検証する。
func (p *GoogleOAuthProvider) GetLoginURL(state string) string {
	params := url.Values{
		"client_id":     {p.config.ClientID},
		"redirect_uri":  {p.config.RedirectURL},
		"response_type": {"code"},
		"scope":         {"openid email profile"},
		"state":         {state},
		"access_type":   {"offline"},
	}
	return p.config.AuthURL + "?" + params.Encode()
}

// ExchangeCode は認可コードをアクセストークンに交換し、ユーザー情報を返す。
// 返り値のProviderUserIDはGoogleのsubクレームで、identitiesテーブルの
// provider_user_idとしてログインユーザーの特定に使われる。
func (p *GoogleOAuthProvider) ExchangeCode(ctx context.Context, code string) (*OAuthUserInfo, error) {
	accessToken, err := p.fetchAccessToken(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}

	claims, err := p.fetchClaims(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}

	return &OAuthUserInfo{
		ProviderUserID: claims.Sub,
		Email:          claims.Email,
		Name:           claims.Name,
		Provider:       "google",
	}, nil
}

// googleClaims はユーザー情報エンドポイントが返すクレームのうち
// プロフィール作成に必要なもの。
type googleClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// fetchAccessToken は認可コードをアクセストークンに交換する。
func (p *GoogleOAuthProvider) fetchAccessToken(ctx context.Context, code string) (string, error) {
	form := url.Values{
		"code":          {code},
		"client_id":     {p.config.ClientID},
		"client_secret": {p.config.ClientSecret},
		"redirect_uri":  {p.config.RedirectURL},
		"grant_type":    {"authorization_code"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := p.doJSON(req, &payload); err != nil {
		return "", err
	}

	if payload.AccessToken == "" {
		return "", fmt.Errorf("empty access token in response")
	}
	return payload.AccessToken, nil
}

// fetchClaims はアクセストークンでGoogleのユーザー情報を取得する。
func (p *GoogleOAuthProvider) fetchClaims(ctx context.Context, accessToken string) (*googleClaims, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.UserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create user info request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var claims googleClaims
	if err := p.doJSON(req, &claims); err != nil {
		return nil, err
	}

	if claims.Sub == "" {
		return nil, fmt.Errorf("empty sub in user info response")
	}
	return &claims, nil
}

// doJSON はリクエストを実行し、200のJSONレスポンスをoutにデコードする。
func (p *GoogleOAuthProvider) doJSON(req *http.Request, out any) error {
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Host, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response body: %w", err)
	}
	return nil
}

// compile-time interface check
var _ OAuthProvider = (*GoogleOAuthProvider)(nil)
