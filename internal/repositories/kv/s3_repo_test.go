package kv

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
	lastCT  string
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}}
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(v))}, nil
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	f.lastCT = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Repository_RoundTripWithPrefix(t *testing.T) {
	ctx := context.Background()
	fake := newFakeObjects()
	r := NewS3Repository(fake, "bucket", "tenants/a")

	v, err := r.Get(ctx, "profiles")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Set(ctx, "profiles", []byte(`[]`)))
	require.Contains(t, fake.objects, "bucket/tenants/a/profiles")
	require.Equal(t, "application/json", fake.lastCT)

	v, err = r.Get(ctx, "profiles")
	require.NoError(t, err)
	require.Equal(t, []byte(`[]`), v)

	require.NoError(t, r.Delete(ctx, "profiles"))
	require.Empty(t, fake.objects)
}

func TestS3Repository_NoPrefix(t *testing.T) {
	fake := newFakeObjects()
	r := NewS3Repository(fake, "b", "")

	require.NoError(t, r.Set(context.Background(), "k", []byte("1")))
	require.Contains(t, fake.objects, "b/k")
}

func TestS3Repository_DeleteMissingIgnored(t *testing.T) {
	fake := newFakeObjects()
	fake.err = &types.NotFound{}
	r := NewS3Repository(fake, "b", "")

	require.NoError(t, r.Delete(context.Background(), "k"))

	v, err := r.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestS3Repository_ErrorsWrapped(t *testing.T) {
	boom := errors.New("access denied")
	fake := newFakeObjects()
	fake.err = boom
	r := NewS3Repository(fake, "b", "")
	ctx := context.Background()

	_, err := r.Get(ctx, "k")
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, r.Set(ctx, "k", nil), boom)
	require.ErrorIs(t, r.Delete(ctx, "k"), boom)
}
