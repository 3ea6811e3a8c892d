package media

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3PutDelete(t *testing.T) {
	ctx := context.Background()
	fake := &fakeObjects{objects: map[string][]byte{}}
	s := &S3{Client: fake, Bucket: "shop", PublicURL: "https://cdn.x.com/shop"}

	url, err := s.Put(ctx, Upload{Filename: "a.png", ContentType: "image/png", Data: pngHeader})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://cdn.x.com/shop/"))
	require.Equal(t, pngHeader, fake.objects["shop/"+KeyFromURL(url)])

	require.NoError(t, s.Delete(ctx, "/uploads/not-ours.png"))
	require.Len(t, fake.objects, 1)

	require.NoError(t, s.Delete(ctx, url))
	require.Empty(t, fake.objects)

	fake.putErr = errors.New("access denied")
	_, err = s.Put(ctx, Upload{Filename: "b.png", Data: pngHeader})
	require.ErrorIs(t, err, fake.putErr)
}

func TestNewS3AgainstEndpoint(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		mu.Lock()
		seen = append(seen, r.Method+" "+r.URL.Path)
		mu.Unlock()
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s, err := NewS3(context.Background(), S3Config{
		Endpoint:     srv.URL,
		Region:       "us-east-1",
		Bucket:       "shop",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		UsePathStyle: true,
	})
	require.NoError(t, err)
	require.Equal(t, srv.URL+"/shop", s.PublicURL)

	url, err := s.Put(context.Background(), Upload{Filename: "a.jpg", ContentType: "image/jpeg", Data: pngHeader})
	require.NoError(t, err)
	key := KeyFromURL(url)
	require.NoError(t, s.Delete(context.Background(), url))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"PUT /shop/" + key, "DELETE /shop/" + key}, seen)
}

func TestNewS3RequiresBucket(t *testing.T) {
	_, err := NewS3(context.Background(), S3Config{})
	require.Error(t, err)
}
