package service

import (
	"time"

	"finance/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockTokenService is a testify mock of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock whose expectations are asserted when t finishes.
func NewMockTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenService {
	m := &MockTokenService{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockTokenService_Expecter struct {
	mock *mock.Mock
}

func (_m *MockTokenService) EXPECT() *MockTokenService_Expecter {
	return &MockTokenService_Expecter{mock: &_m.Mock}
}

// Issue provides a mock function.
func (_m *MockTokenService) Issue(userID int64) (string, error) {
	ret := _m.Called(userID)

	return ret.String(0), ret.Error(1)
}

type MockTokenService_Issue_Call struct {
	*mock.Call
}

func (_e *MockTokenService_Expecter) Issue(userID any) *MockTokenService_Issue_Call {
	return &MockTokenService_Issue_Call{Call: _e.mock.On("Issue", userID)}
}

func (_c *MockTokenService_Issue_Call) Return(token string, err error) *MockTokenService_Issue_Call {
	_c.Call.Return(token, err)

	return _c
}

// Verify provides a mock function.
func (_m *MockTokenService) Verify(tokenString string) service.TokenResult {
	ret := _m.Called(tokenString)

	return ret.Get(0).(service.TokenResult)
}

type MockTokenService_Verify_Call struct {
	*mock.Call
}

func (_e *MockTokenService_Expecter) Verify(tokenString any) *MockTokenService_Verify_Call {
	return &MockTokenService_Verify_Call{Call: _e.mock.On("Verify", tokenString)}
}

func (_c *MockTokenService_Verify_Call) Return(result service.TokenResult) *MockTokenService_Verify_Call {
	_c.Call.Return(result)

	return _c
}

// IsExpired provides a mock function.
func (_m *MockTokenService) IsExpired(claims *service.Claims, now time.Time) bool {
	ret := _m.Called(claims, now)

	return ret.Bool(0)
}

type MockTokenService_IsExpired_Call struct {
	*mock.Call
}

func (_e *MockTokenService_Expecter) IsExpired(claims any, now any) *MockTokenService_IsExpired_Call {
	return &MockTokenService_IsExpired_Call{Call: _e.mock.On("IsExpired", claims, now)}
}

func (_c *MockTokenService_IsExpired_Call) Return(expired bool) *MockTokenService_IsExpired_Call {
	_c.Call.Return(expired)

	return _c
}
