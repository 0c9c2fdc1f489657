package service

import (
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a testify mock of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock whose expectations are asserted when t finishes.
func NewMockPasswordHasher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockPasswordHasher_Expecter struct {
	mock *mock.Mock
}

func (_m *MockPasswordHasher) EXPECT() *MockPasswordHasher_Expecter {
	return &MockPasswordHasher_Expecter{mock: &_m.Mock}
}

// Hash provides a mock function.
func (_m *MockPasswordHasher) Hash(password string) (string, error) {
	ret := _m.Called(password)

	return ret.String(0), ret.Error(1)
}

type MockPasswordHasher_Hash_Call struct {
	*mock.Call
}

func (_e *MockPasswordHasher_Expecter) Hash(password any) *MockPasswordHasher_Hash_Call {
	return &MockPasswordHasher_Hash_Call{Call: _e.mock.On("Hash", password)}
}

func (_c *MockPasswordHasher_Hash_Call) Return(hash string, err error) *MockPasswordHasher_Hash_Call {
	_c.Call.Return(hash, err)

	return _c
}

// Check provides a mock function.
func (_m *MockPasswordHasher) Check(password string, hash string) bool {
	ret := _m.Called(password, hash)

	return ret.Bool(0)
}

type MockPasswordHasher_Check_Call struct {
	*mock.Call
}

func (_e *MockPasswordHasher_Expecter) Check(password any, hash any) *MockPasswordHasher_Check_Call {
	return &MockPasswordHasher_Check_Call{Call: _e.mock.On("Check", password, hash)}
}

func (_c *MockPasswordHasher_Check_Call) Return(ok bool) *MockPasswordHasher_Check_Call {
	_c.Call.Return(ok)

	return _c
}

// DummyHash provides a mock function.
func (_m *MockPasswordHasher) DummyHash() string {
	ret := _m.Called()

	return ret.String(0)
}

type MockPasswordHasher_DummyHash_Call struct {
	*mock.Call
}

func (_e *MockPasswordHasher_Expecter) DummyHash() *MockPasswordHasher_DummyHash_Call {
	return &MockPasswordHasher_DummyHash_Call{Call: _e.mock.On("DummyHash")}
}

func (_c *MockPasswordHasher_DummyHash_Call) Return(hash string) *MockPasswordHasher_DummyHash_Call {
	_c.Call.Return(hash)

	return _c
}
