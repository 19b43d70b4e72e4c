package ocr

import (
	"context"
	"fmt"
	"log"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/labelwise/backend/internal/domain"
)

// RekognitionReader extracts text from label images with AWS Rekognition
type RekognitionReader struct {
	client *rekognition.Client
}

// NewRekognitionReader loads the default AWS config for the given region
// and builds a Rekognition client on it.
func NewRekognitionReader(ctx context.Context, region string) (*RekognitionReader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return &RekognitionReader{client: rekognition.NewFromConfig(cfg)}, nil
}

// ReadText runs text detection on raw image bytes and returns the detected
// lines in reading order. Word-level detections are children of lines and
// are skipped to avoid doubling the text.
func (r *RekognitionReader) ReadText(ctx context.Context, image []byte) ([]domain.Fragment, error) {
	out, err := r.client.DetectText(ctx, &rekognition.DetectTextInput{
		Image: &types.Image{Bytes: image},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOCRUnavailable, err)
	}

	var fragments []domain.Fragment
	for _, detection := range out.TextDetections {
		if detection.Type != types.TextTypesLine {
			continue
		}
		if detection.DetectedText == nil {
			continue
		}
		var confidence float64
		if detection.Confidence != nil {
			confidence = float64(*detection.Confidence) / 100
		}
		fragments = append(fragments, domain.Fragment{
			Text:       *detection.DetectedText,
			Confidence: confidence,
		})
	}

	log.Printf("[OCR] Detected %d text lines", len(fragments))
	return fragments, nil
}
