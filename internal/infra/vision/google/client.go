package google

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	videointelligence "cloud.google.com/go/videointelligence/apiv1"
	"cloud.google.com/go/videointelligence/apiv1/videointelligencepb"
	"google.golang.org/api/option"

	"github.com/jebnlang/video-analyzer/internal/domain/analysis"
)

// Annotator calls the Video Intelligence API and decodes its response into
// the domain annotation bundle. The scoring core never sees provider types.
type Annotator struct {
	client       *videointelligence.Client
	languageCode string
}

func New(ctx context.Context, languageCode string, opts ...option.ClientOption) (*Annotator, error) {
	cli, err := videointelligence.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if languageCode == "" {
		languageCode = "en-US"
	}
	return &Annotator{client: cli, languageCode: languageCode}, nil
}

func (a *Annotator) Close() error { return a.client.Close() }

// Annotate runs the full feature set on one video. gs:// URLs are passed by
// reference; anything else is fetched and sent inline.
func (a *Annotator) Annotate(ctx context.Context, videoURL string) (*analysis.AnnotationBundle, error) {
	req := &videointelligencepb.AnnotateVideoRequest{
		Features: []videointelligencepb.Feature{
			videointelligencepb.Feature_SPEECH_TRANSCRIPTION,
			videointelligencepb.Feature_SHOT_CHANGE_DETECTION,
			videointelligencepb.Feature_LABEL_DETECTION,
			videointelligencepb.Feature_TEXT_DETECTION,
			videointelligencepb.Feature_OBJECT_TRACKING,
			videointelligencepb.Feature_PERSON_DETECTION,
		},
		VideoContext: &videointelligencepb.VideoContext{
			SpeechTranscriptionConfig: &videointelligencepb.SpeechTranscriptionConfig{
				LanguageCode:               a.languageCode,
				EnableAutomaticPunctuation: true,
			},
			PersonDetectionConfig: &videointelligencepb.PersonDetectionConfig{
				IncludeAttributes: true,
			},
		},
	}

	if strings.HasPrefix(videoURL, "gs://") {
		req.InputUri = videoURL
	} else {
		content, err := fetchVideo(ctx, videoURL)
		if err != nil {
			return nil, fmt.Errorf("fetch video: %w", err)
		}
		req.InputContent = content
	}

	op, err := a.client.AnnotateVideo(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("annotate video: %w", err)
	}
	resp, err := op.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("wait for annotation: %w", err)
	}

	results := resp.GetAnnotationResults()
	if len(results) == 0 {
		return &analysis.AnnotationBundle{}, nil
	}
	return decodeResults(results[0]), nil
}

// decodeResults flattens the provider's annotation result into the bundle
// shape the heuristic scorer consumes.
func decodeResults(res *videointelligencepb.VideoAnnotationResults) *analysis.AnnotationBundle {
	bundle := &analysis.AnnotationBundle{}

	var transcript strings.Builder
	for _, st := range res.GetSpeechTranscriptions() {
		alts := st.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if transcript.Len() > 0 {
			transcript.WriteString(" ")
		}
		transcript.WriteString(strings.TrimSpace(alts[0].GetTranscript()))
	}
	bundle.Transcript = transcript.String()

	for _, shot := range res.GetShotAnnotations() {
		bundle.Shots = append(bundle.Shots, analysis.Shot{
			Start: shot.GetStartTimeOffset().AsDuration(),
			End:   shot.GetEndTimeOffset().AsDuration(),
		})
	}

	for _, la := range res.GetSegmentLabelAnnotations() {
		label := analysis.Label{Description: la.GetEntity().GetDescription()}
		for _, cat := range la.GetCategoryEntities() {
			label.Categories = append(label.Categories, cat.GetDescription())
		}
		if segs := la.GetSegments(); len(segs) > 0 {
			label.Confidence = float64(segs[0].GetConfidence())
		}
		bundle.Labels = append(bundle.Labels, label)
	}

	for _, ta := range res.GetTextAnnotations() {
		if t := strings.TrimSpace(ta.GetText()); t != "" {
			bundle.TextDetections = append(bundle.TextDetections, t)
		}
	}

	for _, oa := range res.GetObjectAnnotations() {
		bundle.Objects = append(bundle.Objects, analysis.TrackedObject{
			Description: oa.GetEntity().GetDescription(),
			Confidence:  float64(oa.GetConfidence()),
		})
	}

	for _, pa := range res.GetPersonDetectionAnnotations() {
		person := analysis.Person{}
		for _, track := range pa.GetTracks() {
			for _, obj := range track.GetTimestampedObjects() {
				for _, attr := range obj.GetAttributes() {
					person.Attributes = append(person.Attributes, analysis.PersonAttribute{
						Name:       attr.GetName(),
						Confidence: float64(attr.GetConfidence()),
					})
				}
			}
		}
		bundle.Persons = append(bundle.Persons, person)
	}

	return bundle
}

func fetchVideo(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
