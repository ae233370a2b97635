package dghv_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/she/dghv"
)

func testString(opname string, params dghv.Parameters) string {
	return fmt.Sprintf("%s/lambda=%d/rho=%d/eta=%d/gamma=%d",
		opname,
		params.Security(),
		params.NoiseSize(),
		params.SecretKeySize(),
		params.CiphertextSize())
}

func TestParameters(t *testing.T) {

	t.Run("Generate", func(t *testing.T) {

		for _, tc := range []struct{ lambda, depth int }{
			{lambda: 8, depth: 1},
			{lambda: 22, depth: 4},
			{lambda: 22, depth: 5},
			{lambda: 42, depth: 5},
		} {

			params, err := dghv.GenerateParameters(tc.lambda, tc.depth, 42)
			require.NoError(t, err)

			eta := tc.lambda*tc.lambda + tc.lambda*tc.depth

			require.Equal(t, tc.lambda, params.Security())
			require.Equal(t, 2*tc.lambda, params.NoiseSize())
			require.Equal(t, eta, params.SecretKeySize())
			require.Equal(t, eta*eta*tc.depth, params.CiphertextSize())
			require.Equal(t, uint64(42), params.OracleSeed())
			require.Greater(t, params.MaxDegree()-1, tc.depth)
		}
	})

	t.Run("Preconditions", func(t *testing.T) {

		_, err := dghv.NewParameters(8, 0, 10, 100, 0)
		require.ErrorIs(t, err, dghv.ErrPreconditionNotSatisfied)

		_, err = dghv.NewParameters(8, 20, 10, 100, 0)
		require.ErrorIs(t, err, dghv.ErrPreconditionNotSatisfied)

		_, err = dghv.NewParameters(8, 10, 101, 100, 0)
		require.ErrorIs(t, err, dghv.ErrPreconditionNotSatisfied)

		_, err = dghv.GenerateParameters(0, 1, 0)
		require.ErrorIs(t, err, dghv.ErrPreconditionNotSatisfied)

		_, err = dghv.GenerateParameters(8, 0, 0)
		require.ErrorIs(t, err, dghv.ErrPreconditionNotSatisfied)
	})

	params, err := dghv.NewParameters(8, 16, 72, 10368, 1)
	require.NoError(t, err)

	t.Run(testString("Equal", params), func(t *testing.T) {

		other, err := dghv.NewParametersFromLiteral(params.ParametersLiteral())
		require.NoError(t, err)
		require.True(t, params.Equal(other))

		other, err = dghv.NewParameters(8, 16, 72, 10368, 2)
		require.NoError(t, err)
		require.False(t, params.Equal(other))
	})

	t.Run(testString("Serialization/JSON", params), func(t *testing.T) {

		data, err := json.Marshal(params)
		require.NoError(t, err)

		var other dghv.Parameters
		require.NoError(t, json.Unmarshal(data, &other))
		require.True(t, params.Equal(other))
		require.True(t, cmp.Equal(params.ParametersLiteral(), other.ParametersLiteral()))
	})

	t.Run(testString("Serialization/Binary", params), func(t *testing.T) {

		data, err := params.MarshalBinary()
		require.NoError(t, err)
		require.Equal(t, params.BinarySize(), len(data))

		var other dghv.Parameters
		require.NoError(t, other.UnmarshalBinary(data))
		require.True(t, params.Equal(other))
	})

	t.Run(testString("Serialization/WriterTo", params), func(t *testing.T) {

		buf := new(bytes.Buffer)
		_, err := params.WriteTo(buf)
		require.NoError(t, err)

		var other dghv.Parameters
		_, err = other.ReadFrom(buf)
		require.NoError(t, err)
		require.True(t, params.Equal(other))
	})
}
