package ocean

import (
	"math"

	"oceansandbox/internal/params"
)

// RenderDetail selects how many parallax planes the ocean is drawn with.
type RenderDetail int

const (
	RenderDetailBasic RenderDetail = iota
	RenderDetailDetailed
)

// RenderSink consumes ocean geometry. Each upload is a start call with the
// number of slices, slices+1 vertex calls, and an end call.
type RenderSink interface {
	UploadOceanBasicStart(slices int)
	UploadOceanBasic(x, y float32)
	UploadOceanBasicEnd()

	UploadOceanDetailedStart(slices int)
	UploadOceanDetailed(x, yBack, yMid, yFront float32)
	UploadOceanDetailedEnd()
}

const (
	detailXOffsetSamples = 2
	midPlaneDamp         = float32(0.8)
	backPlaneDamp        = float32(0.45)
)

// Upload sends the surface between the visible world X bounds to sink.
// Zoomed out, at most RenderSlices slices are interpolated; zoomed in, the
// covered samples are sent as they are.
func (s *Surface) Upload(sink RenderSink, visibleLeft, visibleRight float32, detail RenderDetail) {
	leftmost := max(int((visibleLeft+params.HalfMaxWorldWidth)/Dx), 0)
	leftmost = min(leftmost, SamplesCount)
	sampleX := -params.HalfMaxWorldWidth + Dx*float32(leftmost)

	coverage := max(visibleRight-sampleX, 0)
	count := int(math.Ceil(float64(coverage / Dx)))

	if count >= RenderSlices {
		s.startUpload(sink, RenderSlices, detail)
		sliceDx := coverage / RenderSlices
		for i := 0; i <= RenderSlices; i++ {
			f := clampF((sampleX+params.HalfMaxWorldWidth)/Dx, 0, SamplesCount)
			idx := int(f)
			frac := f - float32(idx)
			front := s.interpolated(idx, frac)
			if detail == RenderDetailBasic {
				sink.UploadOceanBasic(sampleX, front)
			} else {
				back := s.interpolated(max(idx-2*detailXOffsetSamples, 0), frac)
				mid := s.interpolated(max(idx-detailXOffsetSamples, 0), frac)
				sink.UploadOceanDetailed(sampleX, back*backPlaneDamp, mid*midPlaneDamp, front)
			}
			sampleX += sliceDx
		}
	} else {
		count = min(count, SamplesCount-leftmost)
		s.startUpload(sink, count, detail)
		for i := 0; i <= count; i++ {
			idx := leftmost + i
			if detail == RenderDetailBasic {
				sink.UploadOceanBasic(sampleX, s.samples[idx].Value)
			} else {
				sink.UploadOceanDetailed(
					sampleX,
					s.samples[max(idx-2*detailXOffsetSamples, 0)].Value*backPlaneDamp,
					s.samples[max(idx-detailXOffsetSamples, 0)].Value*midPlaneDamp,
					s.samples[idx].Value)
			}
			sampleX += Dx
		}
	}

	if detail == RenderDetailBasic {
		sink.UploadOceanBasicEnd()
	} else {
		sink.UploadOceanDetailedEnd()
	}
}

func (s *Surface) startUpload(sink RenderSink, slices int, detail RenderDetail) {
	if detail == RenderDetailBasic {
		sink.UploadOceanBasicStart(slices)
	} else {
		sink.UploadOceanDetailedStart(slices)
	}
}

func (s *Surface) interpolated(idx int, frac float32) float32 {
	return s.samples[idx].Value + s.samples[idx].Delta*frac
}
