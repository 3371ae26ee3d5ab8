package internal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"loopchat/errors"
)

func valid() Config {
	return Config{
		BatchSize:     5,
		ListenPortMin: 10000,
		ListenPortMax: 65000,
	}
}

func Test_Config_Validate(t *testing.T) {
	req := require.New(t)
	req.NoError(valid().Validate())

	zeroBatch := valid()
	zeroBatch.BatchSize = 0
	req.ErrorIs(zeroBatch.Validate(), errors.ErrBatchSize)

	invertedRange := valid()
	invertedRange.ListenPortMin = 65000
	invertedRange.ListenPortMax = 10000
	req.Error(invertedRange.Validate())
}

func Test_CharacterRune(t *testing.T) {
	req := require.New(t)

	r, err := CharacterRune("*")
	req.NoError(err)
	req.Equal('*', r)

	_, err = CharacterRune("**")
	req.Error(err)
	_, err = CharacterRune("")
	req.Error(err)
}
