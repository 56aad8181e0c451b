package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meoying/dbdriver/internal/errs"
)

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{
		"mysql_native_password",
		"caching_sha2_password",
		"sha256_password",
		"mysql_clear_password",
		"mysql_old_password",
	} {
		p, err := r.Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, p.Name())
	}

	_, err := r.Lookup("dialog")
	assert.ErrorIs(t, err, errs.ErrUnsupportedAuthMethod)
}

func TestNativePassword_InitialResponse(t *testing.T) {
	seed := []byte("12345678901234567890")
	ex := &Exchange{Seed: seed, Password: "secret"}

	got, err := (&NativePassword{}).InitialResponse(ex)
	require.NoError(t, err)
	require.Len(t, got, 20)

	// 响应还原之后要满足 XOR(resp, SHA1(password)) == SHA1(seed + SHA1(SHA1(password)))
	stage1 := sha1.Sum([]byte("secret"))
	hash := sha1.Sum(stage1[:])
	crypt := sha1.New()
	crypt.Write(seed)
	crypt.Write(hash[:])
	want := crypt.Sum(nil)
	for i := range got {
		got[i] ^= stage1[i]
	}
	assert.Equal(t, want, got)
}

func TestNativePassword_SeedTruncated(t *testing.T) {
	// seed 带上了结尾的 0x00，只有前 20 个字节参与散列
	seed := []byte("12345678901234567890")
	long := append(append([]byte{}, seed...), 0x00)

	a, err := (&NativePassword{}).InitialResponse(&Exchange{Seed: seed, Password: "p"})
	require.NoError(t, err)
	b, err := (&NativePassword{}).InitialResponse(&Exchange{Seed: long, Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNativePassword_EmptyPassword(t *testing.T) {
	got, err := (&NativePassword{}).InitialResponse(&Exchange{Seed: []byte("x")})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCachingSHA2Password_InitialResponse(t *testing.T) {
	seed := []byte("12345678901234567890")
	got, err := (&CachingSHA2Password{}).InitialResponse(&Exchange{Seed: seed, Password: "secret"})
	require.NoError(t, err)
	require.Len(t, got, 32)

	// XOR(resp, SHA256(password)) == SHA256(SHA256(SHA256(password)) + seed)
	message1 := sha256.Sum256([]byte("secret"))
	message1Hash := sha256.Sum256(message1[:])
	crypt := sha256.New()
	crypt.Write(message1Hash[:])
	crypt.Write(seed)
	want := crypt.Sum(nil)
	for i := range got {
		got[i] ^= message1[i]
	}
	assert.Equal(t, want, got)
}

func TestCachingSHA2Password_NextResponse(t *testing.T) {
	p := &CachingSHA2Password{}
	testcases := []struct {
		name       string
		ex         *Exchange
		serverData []byte
		want       []byte
		// wantNil 为真表示这一轮什么都不发
		wantNil bool
	}{
		{
			name:       "fast auth ok",
			ex:         &Exchange{Password: "secret"},
			serverData: []byte{cachingSHA2FastAuthOK},
			wantNil:    true,
		},
		{
			name:       "full auth over tls sends clear text",
			ex:         &Exchange{Password: "secret", Secure: true},
			serverData: []byte{cachingSHA2FullAuth},
			want:       append([]byte("secret"), 0x00),
		},
		{
			name:       "full auth without tls requests public key",
			ex:         &Exchange{Password: "secret"},
			serverData: []byte{cachingSHA2FullAuth},
			want:       []byte{requestPublicKeyCachingSHA2},
		},
	}
	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.NextResponse(tc.ex, tc.serverData)
			require.NoError(t, err)
			if tc.wantNil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSHA256Password_InitialResponse(t *testing.T) {
	p := &SHA256Password{}

	got, err := p.InitialResponse(&Exchange{Password: "secret", Secure: true})
	require.NoError(t, err)
	assert.Equal(t, append([]byte("secret"), 0x00), got)

	got, err = p.InitialResponse(&Exchange{Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, []byte{requestPublicKeySHA256}, got)

	// 空密码直接回空响应，不用走公钥交换
	got, err = p.InitialResponse(&Exchange{})
	require.NoError(t, err)
	assert.Equal(t, []byte{}, got)
}

func TestClearPassword(t *testing.T) {
	p := &ClearPassword{}
	got, err := p.InitialResponse(&Exchange{Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, []byte{'p', 'w', 0x00}, got)
}

func TestOldPassword_InitialResponse(t *testing.T) {
	seed := []byte("abcdefgh12345678901")
	p := &OldPassword{}

	got, err := p.InitialResponse(&Exchange{Seed: seed, Password: "secret"})
	require.NoError(t, err)
	// 8 字节 scramble 加结尾的 0x00
	require.Len(t, got, 9)
	assert.Equal(t, byte(0x00), got[8])

	// 只依赖 seed 的前 8 个字节
	short, err := p.InitialResponse(&Exchange{Seed: seed[:8], Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, short, got)

	empty, err := p.InitialResponse(&Exchange{Seed: seed})
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestOldHash_IgnoresSpaces(t *testing.T) {
	assert.Equal(t, oldHash([]byte("pass word")), oldHash([]byte("password")))
	assert.Equal(t, oldHash([]byte("pass\tword")), oldHash([]byte("password")))
}

func TestEncryptPassword(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	seed := []byte("12345678901234567890")
	enc, err := encryptPassword("secret", seed, pubPEM)
	require.NoError(t, err)

	plain, err := rsa.DecryptOAEP(sha1.New(), rand.Reader, key, enc, nil)
	require.NoError(t, err)
	// 解密之后再和 seed XOR 一次就回到了密码明文加结尾 0x00
	for i := range plain {
		plain[i] ^= seed[i%len(seed)]
	}
	assert.Equal(t, append([]byte("secret"), 0x00), plain)
}

func TestEncryptPassword_BadKey(t *testing.T) {
	_, err := encryptPassword("secret", []byte("seed"), []byte("not pem"))
	assert.ErrorIs(t, err, errs.ErrPktMalformed)
}
