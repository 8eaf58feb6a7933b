package integrity_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/temirov/aeon/internal/integrity"
)

const (
	emptyDigestConstant = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	xDigestConstant     = "2d711642b726b04401627ca9fbac32f5c8530fb1903cc4db02258717921a4881"
	abcDigestConstant   = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
)

func TestHashFile(testInstance *testing.T) {
	testCases := []struct {
		name           string
		content        string
		expectedDigest string
	}{
		{name: "empty_file", content: "", expectedDigest: emptyDigestConstant},
		{name: "single_byte", content: "x", expectedDigest: xDigestConstant},
		{name: "short_text", content: "abc", expectedDigest: abcDigestConstant},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			fileSystem := afero.NewMemMapFs()
			require.NoError(subtest, afero.WriteFile(fileSystem, "artifact", []byte(testCase.content), 0o644))

			digest, hashError := integrity.NewHasher(fileSystem).HashFile("artifact")
			require.NoError(subtest, hashError)
			require.Equal(subtest, testCase.expectedDigest, digest)
		})
	}
}

func TestHashFileSpansManyChunks(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	content := strings.Repeat("a", integrity.ChunkSize*3+17)
	require.NoError(testInstance, afero.WriteFile(fileSystem, "large", []byte(content), 0o644))

	fileDigest, hashError := integrity.NewHasher(fileSystem).HashFile("large")
	require.NoError(testInstance, hashError)

	readerDigest, readerError := integrity.HashReader("inline", strings.NewReader(content))
	require.NoError(testInstance, readerError)
	require.Equal(testInstance, readerDigest, fileDigest)
	require.Len(testInstance, fileDigest, 64)
}

func TestHashFileMissing(testInstance *testing.T) {
	_, hashError := integrity.NewHasher(afero.NewMemMapFs()).HashFile("absent")
	require.Error(testInstance, hashError)

	var ioError *integrity.IOError
	require.True(testInstance, errors.As(hashError, &ioError))
	require.Equal(testInstance, "absent", ioError.Path)
}
