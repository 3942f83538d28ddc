package s3objects

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/poiesic/reviewpipe/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string]string
	err     error
	input   *s3.GetObjectInput
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestReader_GetObject(t *testing.T) {
	client := &fakeS3{objects: map[string]string{"reviews/in/a.json": `{"ProductName":"x"}`}}
	r, err := NewReader(client)
	require.NoError(t, err)

	data, err := r.GetObject(context.Background(), "reviews", "in/a.json")
	require.NoError(t, err)
	assert.Equal(t, `{"ProductName":"x"}`, string(data))
	assert.Equal(t, "reviews", aws.ToString(client.input.Bucket))
	assert.Equal(t, "in/a.json", aws.ToString(client.input.Key))
}

func TestReader_NoSuchKey(t *testing.T) {
	r, err := NewReader(&fakeS3{})
	require.NoError(t, err)

	_, err = r.GetObject(context.Background(), "reviews", "missing.txt")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestReader_TransientError(t *testing.T) {
	boom := errors.New("connection reset")
	r, err := NewReader(&fakeS3{err: boom})
	require.NoError(t, err)

	_, err = r.GetObject(context.Background(), "reviews", "a.txt")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}

func TestNewReader_RequiresClient(t *testing.T) {
	_, err := NewReader(nil)
	assert.Error(t, err)
}
