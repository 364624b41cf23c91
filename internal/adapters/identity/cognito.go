package identity

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// CognitoClient captures the Cognito operations the adapter uses.
type CognitoClient interface {
	SignUp(ctx context.Context, params *cognitoidentityprovider.SignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, params *cognitoidentityprovider.ConfirmSignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ConfirmSignUpOutput, error)
	ForgotPassword(ctx context.Context, params *cognitoidentityprovider.ForgotPasswordInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ForgotPasswordOutput, error)
	ConfirmForgotPassword(ctx context.Context, params *cognitoidentityprovider.ConfirmForgotPasswordInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ConfirmForgotPasswordOutput, error)
	InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
}

// CognitoProvider implements Provider against an AWS Cognito user pool.
type CognitoProvider struct {
	client   CognitoClient
	clientID string
}

// NewCognitoProvider creates a provider bound to a user pool app client.
func NewCognitoProvider(client CognitoClient, clientID string) *CognitoProvider {
	return &CognitoProvider{client: client, clientID: clientID}
}

// SignUp registers a new identity and returns the assigned subject id.
func (p *CognitoProvider) SignUp(ctx context.Context, email, password string) (string, error) {
	out, err := p.client.SignUp(ctx, &cognitoidentityprovider.SignUpInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(email),
		Password: aws.String(password),
	})
	if err != nil {
		var exists *types.UsernameExistsException
		if errors.As(err, &exists) {
			return "", NewProviderError("signup", ErrUserExists)
		}
		return "", NewProviderError("signup", err)
	}

	return aws.ToString(out.UserSub), nil
}

// ConfirmSignUp confirms a registration with the emailed code.
func (p *CognitoProvider) ConfirmSignUp(ctx context.Context, email, code string) error {
	_, err := p.client.ConfirmSignUp(ctx, &cognitoidentityprovider.ConfirmSignUpInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	})
	if err != nil {
		var mismatch *types.CodeMismatchException
		if errors.As(err, &mismatch) {
			return NewProviderError("confirm signup", ErrCodeMismatch)
		}
		return NewProviderError("confirm signup", err)
	}

	return nil
}

// ForgotPassword starts a password recovery flow.
func (p *CognitoProvider) ForgotPassword(ctx context.Context, email string) error {
	_, err := p.client.ForgotPassword(ctx, &cognitoidentityprovider.ForgotPasswordInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(email),
	})
	if err != nil {
		return NewProviderError("forgot password", err)
	}

	return nil
}

// ConfirmForgotPassword completes a recovery flow.
func (p *CognitoProvider) ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error {
	_, err := p.client.ConfirmForgotPassword(ctx, &cognitoidentityprovider.ConfirmForgotPasswordInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
		Password:         aws.String(newPassword),
	})
	if err != nil {
		var mismatch *types.CodeMismatchException
		if errors.As(err, &mismatch) {
			return NewProviderError("confirm password", ErrCodeMismatch)
		}
		return NewProviderError("confirm password", err)
	}

	return nil
}

// Login authenticates with the user-password flow and returns the token pair.
func (p *CognitoProvider) Login(ctx context.Context, email, password string) (*Session, error) {
	out, err := p.client.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		ClientId: aws.String(p.clientID),
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		var notAuthorized *types.NotAuthorizedException
		if errors.As(err, &notAuthorized) {
			return nil, NewProviderError("login", ErrInvalidCredentials)
		}
		var notConfirmed *types.UserNotConfirmedException
		if errors.As(err, &notConfirmed) {
			return nil, NewProviderError("login", ErrUserNotConfirmed)
		}
		return nil, NewProviderError("login", err)
	}
	if out.AuthenticationResult == nil {
		return nil, NewProviderError("login", errors.New("missing authentication result"))
	}

	return &Session{
		Email:        email,
		Token:        aws.ToString(out.AuthenticationResult.AccessToken),
		RefreshToken: aws.ToString(out.AuthenticationResult.RefreshToken),
	}, nil
}
