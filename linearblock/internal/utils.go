package internal

import (
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

func ColumnSwapped(H mat.SparseMat, order []int) mat.SparseMat {
	rows, cols := H.Dims()
	result := mat.CSRMat(rows, cols)

	for c, c1 := range order {
		result.SetColumn(c, H.Column(c1))
	}
	return result
}

//ValidateHGMatrices tests if G*H.T ==0 where H.T is the transpose of H
func ValidateHGMatrices(G, H mat.SparseMat) bool {
	rows, gCols := G.Dims()
	cols, hCols := H.Dims()
	if gCols != hCols {
		logrus.Debugf("G has %v columns but H has %v", gCols, hCols)
		return false
	}

	//we cache the H.T hopefully this is in CSR so this should be way
	// faster than taking the actual H.T() then doing this
	cache := make([]mat.SparseVector, cols)
	for i := 0; i < cols; i++ {
		cache[i] = H.Row(i)
	}
	for i := 0; i < rows; i++ {
		row := G.Row(i)
		for j := 0; j < cols; j++ {
			//equiv to G*H.T
			if row.Dot(cache[j]) > 0 {
				logrus.Debugf("row %v of G is not orthogonal to row %v of H", i, j)
				return false
			}
		}
	}

	return true
}

//ValidateSingleErrorColumns tests that every column of H is nonzero and no two
// columns are equal, which is what lets a syndrome name a single bit position.
func ValidateSingleErrorColumns(H mat.SparseMat) bool {
	_, cols := H.Dims()

	seen := make(map[string]int, cols)
	for c := 0; c < cols; c++ {
		column := H.Column(c)
		if column.IsZero() {
			logrus.Debugf("column %v of H is zero", c)
			return false
		}
		key := column.String()
		if other, has := seen[key]; has {
			logrus.Debugf("columns %v and %v of H are equal", other, c)
			return false
		}
		seen[key] = c
	}
	return true
}
