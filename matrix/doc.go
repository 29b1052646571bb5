// Package matrix provides the dense square matrices used by assignment-type
// instances (flow and distance tables).
//
// Dense stores n×n float64 values in one flat row-major slice; entry (i,j)
// is data[i*n+j]. Public accessors validate indices and reject NaN/Inf;
// Data exposes the raw buffer for hot loops after validation.
package matrix
