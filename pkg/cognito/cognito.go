package cognito

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// Cognito user attribute names
const (
	AttributeName       = "name"
	AttributeGivenName  = "given_name"
	AttributeFamilyName = "family_name"
	AttributeEmail      = "email"
)

// RegisterParams carries the attributes for registering a new user
type RegisterParams struct {
	Name       string
	GivenName  string
	FamilyName string
	Email      string
	Password   string
}

// AuthResult is the credential set issued by the identity provider
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int32
}

// Provider is the identity-provider contract consumed by the auth handlers and
// the session guard
type Provider interface {
	Register(ctx context.Context, params RegisterParams) (string, error)
	ConfirmSignUp(ctx context.Context, email, code string) error
	ResendConfirmationCode(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
}

// Client implements Provider against AWS Cognito
type Client struct {
	svc      *cip.Client
	clientID string
}

// NewClient creates a new Cognito client for the given region and app client
func NewClient(ctx context.Context, region, clientID string) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("error loading AWS configuration: %w", err)
	}

	log.Println("Cognito client initialized successfully!")
	return &Client{
		svc:      cip.NewFromConfig(cfg),
		clientID: clientID,
	}, nil
}

// Register signs the user up and returns the provider-assigned subject id
func (c *Client) Register(ctx context.Context, params RegisterParams) (string, error) {
	out, err := c.svc.SignUp(ctx, &cip.SignUpInput{
		ClientId: aws.String(c.clientID),
		Username: aws.String(params.Email),
		Password: aws.String(params.Password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String(AttributeName), Value: aws.String(params.Name)},
			{Name: aws.String(AttributeEmail), Value: aws.String(params.Email)},
			{Name: aws.String(AttributeGivenName), Value: aws.String(params.GivenName)},
			{Name: aws.String(AttributeFamilyName), Value: aws.String(params.FamilyName)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("cognito sign up failed: %w", err)
	}
	return aws.ToString(out.UserSub), nil
}

// ConfirmSignUp confirms a registration with the emailed verification code
func (c *Client) ConfirmSignUp(ctx context.Context, email, code string) error {
	_, err := c.svc.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(c.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	})
	if err != nil {
		return fmt.Errorf("cognito confirm sign up failed: %w", err)
	}
	return nil
}

// ResendConfirmationCode resends the verification code email
func (c *Client) ResendConfirmationCode(ctx context.Context, email string) error {
	_, err := c.svc.ResendConfirmationCode(ctx, &cip.ResendConfirmationCodeInput{
		ClientId: aws.String(c.clientID),
		Username: aws.String(email),
	})
	if err != nil {
		return fmt.Errorf("cognito resend confirmation code failed: %w", err)
	}
	return nil
}

// Login authenticates with the user-password flow
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	out, err := c.svc.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
		ClientId: aws.String(c.clientID),
	})
	if err != nil {
		return nil, fmt.Errorf("cognito login failed: %w", err)
	}
	return authResultFromOutput(out.AuthenticationResult)
}

// Refresh exchanges a stored refresh secret for a new credential set
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	out, err := c.svc.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeRefreshTokenAuth,
		AuthParameters: map[string]string{
			"REFRESH_TOKEN": refreshToken,
		},
		ClientId: aws.String(c.clientID),
	})
	if err != nil {
		return nil, fmt.Errorf("cognito refresh failed: %w", err)
	}
	result, err := authResultFromOutput(out.AuthenticationResult)
	if err != nil {
		return nil, err
	}
	// The refresh flow keeps the original refresh token valid unless rotation
	// is enabled; fall back to the one we sent so callers always persist a
	// usable secret.
	if result.RefreshToken == "" {
		result.RefreshToken = refreshToken
	}
	return result, nil
}

func authResultFromOutput(result *types.AuthenticationResultType) (*AuthResult, error) {
	if result == nil || result.AccessToken == nil {
		return nil, fmt.Errorf("cognito returned an incomplete authentication result")
	}
	return &AuthResult{
		AccessToken:  aws.ToString(result.AccessToken),
		RefreshToken: aws.ToString(result.RefreshToken),
		ExpiresIn:    result.ExpiresIn,
	}, nil
}
