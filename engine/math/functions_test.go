package math

import (
	m "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const tolerance = 1e-9

func randomMat4(r *rand.Rand) Mat4 {
	out := Mat4{}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out.Data[i][j] = r.Float64()*20 - 10
		}
	}
	return out
}

func TestMat4Mul(t *testing.T) {
	a := Mat4{Data: [4][4]float64{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}}
	b := NewMat4Identity()
	assert.Equal(t, a, a.Mul(b))
	assert.Equal(t, a, b.Mul(a))

	got := a.Mul(a)
	assert.Equal(t, 90.0, got.Data[0][0])
	assert.Equal(t, 100.0, got.Data[0][1])
	assert.Equal(t, 600.0, got.Data[3][3])
}

func TestMat4MulVec4(t *testing.T) {
	tr := NewMat4Translation(1, 2, 3)
	got := tr.MulVec4(NewPoint(0, 0, 0))
	assert.Equal(t, NewVec4(1, 2, 3, 1), got)

	// directions are not translated
	dir := tr.MulVec4(NewVec4(1, 0, 0, 0))
	assert.Equal(t, NewVec4(1, 0, 0, 0), dir)
}

func TestMat4Determinant(t *testing.T) {
	assert.Equal(t, 1.0, NewMat4Identity().Determinant())
	assert.InDelta(t, 24.0, NewMat4Scale(2, 3, 4).Determinant(), tolerance)
	assert.InDelta(t, -1.0, NewMat4Reflection(true, false, false).Determinant(), tolerance)
}

func TestMat4InverseRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	identity := NewMat4Identity()
	checked := 0
	for i := 0; i < 200; i++ {
		mt := randomMat4(r)
		if kabs(mt.Determinant()) < 1e-3 {
			continue
		}
		inv := mt.Inverse()
		assert.True(t, inv.Mul(mt).Compare(identity, 1e-6), "inverse(M)*M != I for %v", mt)
		assert.True(t, mt.Mul(inv).Compare(identity, 1e-6), "M*inverse(M) != I for %v", mt)
		checked++
	}
	require.Greater(t, checked, 100)
}

func TestMat4InverseOfModelMatrix(t *testing.T) {
	model := ComposeModelMatrix(NewVec3(3, -2, 7), NewVec3(0.3, 1.1, -0.7), NewVec3(2, 0.5, 4), BVec3{Y: true}, Vec3{})
	inv := model.Inverse()
	p := NewPoint(1, 2, 3)
	back := inv.MulVec4(model.MulVec4(p))
	assert.True(t, back.Compare(p, 1e-9), "got %v", back)
}

func TestMat4InverseSingular(t *testing.T) {
	zero := Mat4{}
	assert.Equal(t, zero, zero.Inverse())

	rankDeficient := Mat4{Data: [4][4]float64{
		{1, 2, 3, 4},
		{2, 4, 6, 8},
		{0, 1, 0, 1},
		{1, 0, 1, 0},
	}}
	assert.Equal(t, rankDeficient, rankDeficient.Inverse())

	_, err := zero.TryInverse()
	assert.ErrorIs(t, err, ErrSingularMatrix)
}

func TestMat3Inverse(t *testing.T) {
	mt := Mat3{Data: [3][3]float64{
		{2, 0, 1},
		{1, 3, 2},
		{1, 1, 2},
	}}
	require.InDelta(t, 6.0, mt.Determinant(), tolerance)
	inv := mt.Inverse()
	want := Mat3{Data: [3][3]float64{
		{4.0 / 6, 1.0 / 6, -3.0 / 6},
		{0, 3.0 / 6, -3.0 / 6},
		{-2.0 / 6, -2.0 / 6, 1},
	}}
	assert.True(t, inv.Compare(want, tolerance))
	assert.True(t, inv.Mul(mt).Compare(NewMat3Identity(), tolerance))
	assert.True(t, mt.Mul(inv).Compare(NewMat3Identity(), tolerance))

	singular := Mat3{Data: [3][3]float64{{1, 2, 3}, {2, 4, 6}, {0, 0, 1}}}
	assert.Equal(t, singular, singular.Inverse())
}

func TestMat3Mat4Conversion(t *testing.T) {
	r := NewMat3Rotation(0.1, 0.2, 0.3)
	assert.True(t, r.ToMat4().ToMat3().Compare(r, tolerance))
	assert.Equal(t, 1.0, r.ToMat4().Data[3][3])
	assert.True(t, NewMat4Rotation(0.1, 0.2, 0.3).ToMat3().Compare(r, tolerance))
}

func TestMat4Transposed(t *testing.T) {
	tr := NewMat4Translation(1, 2, 3).Transposed()
	assert.Equal(t, 1.0, tr.Data[3][0])
	assert.Equal(t, 2.0, tr.Data[3][1])
	assert.Equal(t, 3.0, tr.Data[3][2])
}

func TestVec3Merge(t *testing.T) {
	v := NewVec3(1, 2, 3)
	assert.Equal(t, NewVec3(1, 5, 3), v.Merge(Vec3Patch{Y: Ptr(5.0)}))
	assert.Equal(t, v, v.Merge(Vec3Patch{}))
	assert.Equal(t, NewVec3(7, 8, 9), v.Merge(NewVec3(7, 8, 9).Patch()))

	b := BVec3{X: true}
	assert.Equal(t, BVec3{X: true, Z: true}, b.Merge(BVec3Patch{Z: Ptr(true)}))
}

func TestVec4IsFinite(t *testing.T) {
	assert.True(t, NewPoint(1, 2, 3).IsFinite())
	assert.False(t, NewVec4(m.NaN(), 0, 0, 1).IsFinite())
	assert.False(t, NewVec4(0, m.Inf(1), 0, 1).IsFinite())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 10, Clamp(30, 0, 10))
	assert.Equal(t, 0.5, Clamp(0.5, 0.0, 1.0))
}
