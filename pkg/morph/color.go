package morph

import "math"

// colorCorrectionMinDenom is the floor applied to a channel mean before
// it is used as a division denominator, per spec §4.6.
const colorCorrectionMinDenom = 1.0

// ColorCorrect implements the per-channel mean-matching corrector of
// spec §4.6: it computes the mean R,G,B of src and warped over pixels
// where mask > 127, derives a per-channel factor
// f_c = 1 + strength·(S̄_c − W̄_c)/max(W̄_c,1), and multiplies warped's
// channels by f_c in place, alpha untouched. If either masked region is
// empty, warped is left unmodified.
func ColorCorrect(src, warped *Buffer, mask *Mask, strength float64) error {
	if !SameDimensions(src, warped) || src.W != mask.W || src.H != mask.H {
		return ErrDimensionMismatch
	}

	sMean, sN := maskedMean(src, mask)
	wMean, wN := maskedMean(warped, mask)
	if sN == 0 || wN == 0 {
		return nil
	}

	var factor [3]float64
	for c := 0; c < 3; c++ {
		denom := math.Max(wMean[c], colorCorrectionMinDenom)
		factor[c] = 1 + strength*(sMean[c]-wMean[c])/denom
	}

	applyChannelFactors(warped, factor)
	return nil
}

// maskedMean computes the per-channel mean R,G,B of b over pixels where
// mask's corresponding value exceeds 127, and the count of such pixels.
func maskedMean(b *Buffer, mask *Mask) (mean [3]float64, n int) {
	var sum [3]float64
	for i := 0; i < mask.W*mask.H; i++ {
		if mask.Pix[i] <= 127 {
			continue
		}
		o := i * 4
		sum[0] += float64(b.Pix[o])
		sum[1] += float64(b.Pix[o+1])
		sum[2] += float64(b.Pix[o+2])
		n++
	}
	if n == 0 {
		return mean, 0
	}
	for c := 0; c < 3; c++ {
		mean[c] = sum[c] / float64(n)
	}
	return mean, n
}

// applyChannelFactors multiplies every pixel's R,G,B by factor, clipped
// to [0,255]; alpha is untouched.
func applyChannelFactors(b *Buffer, factor [3]float64) {
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i] = clampByte(float64(b.Pix[i]) * factor[0])
		b.Pix[i+1] = clampByte(float64(b.Pix[i+1]) * factor[1])
		b.Pix[i+2] = clampByte(float64(b.Pix[i+2]) * factor[2])
	}
}
