package wallet

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"learnplatform/internal/infrastructure/security"

	"github.com/go-resty/resty/v2"
)

// API drives the gateway the way the browser front end does.
type API struct {
	client *resty.Client
	signer *security.KeypairSigner
}

func NewAPI(baseURL string, signer *security.KeypairSigner) *API {
	return &API{
		client: resty.New().SetBaseURL(baseURL),
		signer: signer,
	}
}

type apiError struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		if e, ok := resp.Error().(*apiError); ok && e.Error != "" {
			if e.Redirect != "" {
				return fmt.Errorf("%s (%d): %s, go to %s", resp.Request.URL, resp.StatusCode(), e.Error, e.Redirect)
			}
			return fmt.Errorf("%s (%d): %s", resp.Request.URL, resp.StatusCode(), e.Error)
		}
		return fmt.Errorf("%s: %s", resp.Request.URL, resp.Status())
	}
	return nil
}

func (a *API) sign(ctx context.Context, message string) (string, error) {
	sig, err := a.signer.SignMessage(ctx, []byte(message))
	if err != nil {
		return "", err
	}
	return security.EncodeSignature(sig), nil
}

type RegisterResult struct {
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"user"`
	Redirect string `json:"redirect"`
}

func (a *API) Register(ctx context.Context, username, fullName, role string) (*RegisterResult, error) {
	var msg struct {
		Message string `json:"message"`
	}
	err := check(a.client.R().SetContext(ctx).
		SetBody(map[string]string{"username": username}).
		SetResult(&msg).SetError(&apiError{}).
		Post("/api/v1/auth/register/message"))
	if err != nil {
		return nil, err
	}

	sig, err := a.sign(ctx, msg.Message)
	if err != nil {
		return nil, err
	}

	var out RegisterResult
	err = check(a.client.R().SetContext(ctx).
		SetBody(map[string]string{
			"wallet":    a.signer.Address(),
			"username":  username,
			"full_name": fullName,
			"role":      role,
			"signature": sig,
		}).
		SetResult(&out).SetError(&apiError{}).
		Post("/api/v1/auth/register"))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	Username    string `json:"username"`
}

func (a *API) Login(ctx context.Context) (*LoginResult, error) {
	var challenge struct {
		Message string `json:"message"`
	}
	err := check(a.client.R().SetContext(ctx).
		SetQueryParam("wallet", a.signer.Address()).
		SetResult(&challenge).SetError(&apiError{}).
		Get("/api/v1/auth/challenge"))
	if err != nil {
		return nil, err
	}
	if challenge.Message == "" {
		return nil, errors.New("gateway returned an empty challenge")
	}

	sig, err := a.sign(ctx, challenge.Message)
	if err != nil {
		return nil, err
	}

	var out LoginResult
	err = check(a.client.R().SetContext(ctx).
		SetBody(map[string]string{"wallet": a.signer.Address(), "signature": sig}).
		SetResult(&out).SetError(&apiError{}).
		Post("/api/v1/auth/login"))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Session returns the raw session document for an access token.
func (a *API) Session(ctx context.Context, accessToken string) (map[string]any, error) {
	out := map[string]any{}
	req := a.client.R().SetContext(ctx).SetResult(&out).SetError(&apiError{})
	if accessToken != "" {
		req.SetAuthToken(accessToken)
	}
	resp, err := req.Get("/api/v1/session")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status())
	}
	return out, nil
}
