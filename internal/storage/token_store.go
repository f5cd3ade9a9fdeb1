package storage

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// TokenStore holds Jira personal access tokens for pre-provisioned
// users and service identities (the MCP server runs on one of these).
type TokenStore interface {
	GetToken(ctx context.Context, userID string) (string, error)
	SetToken(ctx context.Context, userID, token string) error
}

// S3TokenStore implements TokenStore using AWS S3, encrypting every
// token with AES-GCM before it leaves the process.
type S3TokenStore struct {
	client     *s3.Client
	bucketName string
	encryptKey []byte // 32-byte key for AES-256
}

type tokenData struct {
	Token string `json:"token"`
}

// NewS3TokenStore creates a new S3TokenStore instance
func NewS3TokenStore(client *s3.Client, bucketName string, encryptKey []byte) *S3TokenStore {
	return &S3TokenStore{
		client:     client,
		bucketName: bucketName,
		encryptKey: encryptKey,
	}
}

// GetToken retrieves and decrypts the token for the given user ID
func (s *S3TokenStore) GetToken(ctx context.Context, userID string) (string, error) {
	key := s.objectKey(userID)

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get token from S3: %w", err)
	}
	defer result.Body.Close()

	var data tokenData
	if err := json.NewDecoder(result.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode token data: %w", err)
	}

	decryptedToken, err := s.decrypt(data.Token)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt token: %w", err)
	}

	return decryptedToken, nil
}

// SetToken encrypts and stores a token for the given user ID
func (s *S3TokenStore) SetToken(ctx context.Context, userID, token string) error {
	key := s.objectKey(userID)

	encryptedToken, err := s.encrypt(token)
	if err != nil {
		return fmt.Errorf("failed to encrypt token: %w", err)
	}

	data := tokenData{Token: encryptedToken}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal token data: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
		Body:   bytes.NewReader(jsonData),
	})
	if err != nil {
		return fmt.Errorf("failed to store token in S3: %w", err)
	}

	return nil
}

// encrypt encrypts the token using AES-GCM
func (s *S3TokenStore) encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(s.encryptKey)
	if err != nil {
		return "", err
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	// Generate a random nonce
	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := aesGCM.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts the token using AES-GCM
func (s *S3TokenStore) decrypt(encryptedText string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encryptedText)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(s.encryptKey)
	if err != nil {
		return "", err
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	if len(ciphertext) < aesGCM.NonceSize() {
		return "", fmt.Errorf("ciphertext too short")
	}

	// Split nonce and ciphertext
	nonce := ciphertext[:aesGCM.NonceSize()]
	ciphertext = ciphertext[aesGCM.NonceSize():]

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// objectKey generates the S3 key for a user's token
func (s *S3TokenStore) objectKey(userID string) string {
	return fmt.Sprintf("jira-pats/%s.json", userID)
}

// MemoryTokenStore is an in-process TokenStore for development and
// tests, used when no S3 bucket is configured.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewMemoryTokenStore creates an empty in-memory token store
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]string)}
}

// GetToken returns the stored token for the user
func (m *MemoryTokenStore) GetToken(_ context.Context, userID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	token, ok := m.tokens[userID]
	if !ok {
		return "", fmt.Errorf("no token stored for user %s", userID)
	}
	return token, nil
}

// SetToken stores the token for the user
func (m *MemoryTokenStore) SetToken(_ context.Context, userID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[userID] = token
	return nil
}
