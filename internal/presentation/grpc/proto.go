package grpc

// Hand-maintained service definition for sentinel.risk.v1.RiskService.
// Messages are plain structs carried by the "json" codec in codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RiskServiceName is the fully qualified gRPC service name.
const RiskServiceName = "sentinel.risk.v1.RiskService"

// Full method names, as seen by interceptors.
const (
	MethodAnalyzeLogin    = "/" + RiskServiceName + "/AnalyzeLogin"
	MethodAnalyzePayload  = "/" + RiskServiceName + "/AnalyzePayload"
	MethodGetAssessment   = "/" + RiskServiceName + "/GetAssessment"
	MethodListAssessments = "/" + RiskServiceName + "/ListAssessments"
)

// RiskServiceServer is the server API for RiskService.
type RiskServiceServer interface {
	AnalyzeLogin(context.Context, *AnalyzeLoginRequest) (*AnalyzeLoginResponse, error)
	AnalyzePayload(context.Context, *AnalyzePayloadRequest) (*AnalyzePayloadResponse, error)
	GetAssessment(context.Context, *GetAssessmentRequest) (*Assessment, error)
	ListAssessments(context.Context, *ListAssessmentsRequest) (*ListAssessmentsResponse, error)
	mustEmbedUnimplementedRiskServiceServer()
}

// UnimplementedRiskServiceServer provides forward-compatible default implementations.
type UnimplementedRiskServiceServer struct{}

func (UnimplementedRiskServiceServer) AnalyzeLogin(context.Context, *AnalyzeLoginRequest) (*AnalyzeLoginResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeLogin not implemented")
}
func (UnimplementedRiskServiceServer) AnalyzePayload(context.Context, *AnalyzePayloadRequest) (*AnalyzePayloadResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzePayload not implemented")
}
func (UnimplementedRiskServiceServer) GetAssessment(context.Context, *GetAssessmentRequest) (*Assessment, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAssessment not implemented")
}
func (UnimplementedRiskServiceServer) ListAssessments(context.Context, *ListAssessmentsRequest) (*ListAssessmentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListAssessments not implemented")
}
func (UnimplementedRiskServiceServer) mustEmbedUnimplementedRiskServiceServer() {}

// RegisterRiskServiceServer registers srv with s.
func RegisterRiskServiceServer(s grpclib.ServiceRegistrar, srv RiskServiceServer) {
	s.RegisterService(&riskServiceDesc, srv)
}

var riskServiceDesc = grpclib.ServiceDesc{
	ServiceName: RiskServiceName,
	HandlerType: (*RiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AnalyzeLogin", Handler: analyzeLoginHandler},
		{MethodName: "AnalyzePayload", Handler: analyzePayloadHandler},
		{MethodName: "GetAssessment", Handler: getAssessmentHandler},
		{MethodName: "ListAssessments", Handler: listAssessmentsHandler},
	},
	Streams: []grpclib.StreamDesc{},
}

// unary decodes the request and runs call through the interceptor chain.
func unary[Req any, Resp any](
	method string,
	call func(RiskServiceServer, context.Context, *Req) (*Resp, error),
) func(interface{}, context.Context, func(interface{}) error, grpclib.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
		req := new(Req)
		if err := dec(req); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RiskServiceServer), ctx, req)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(RiskServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, req, info, handler)
	}
}

var (
	analyzeLoginHandler    = unary(MethodAnalyzeLogin, RiskServiceServer.AnalyzeLogin)
	analyzePayloadHandler  = unary(MethodAnalyzePayload, RiskServiceServer.AnalyzePayload)
	getAssessmentHandler   = unary(MethodGetAssessment, RiskServiceServer.GetAssessment)
	listAssessmentsHandler = unary(MethodListAssessments, RiskServiceServer.ListAssessments)
)

// RiskServiceClient is the client API for RiskService.
type RiskServiceClient interface {
	AnalyzeLogin(ctx context.Context, in *AnalyzeLoginRequest, opts ...grpclib.CallOption) (*AnalyzeLoginResponse, error)
	AnalyzePayload(ctx context.Context, in *AnalyzePayloadRequest, opts ...grpclib.CallOption) (*AnalyzePayloadResponse, error)
	GetAssessment(ctx context.Context, in *GetAssessmentRequest, opts ...grpclib.CallOption) (*Assessment, error)
	ListAssessments(ctx context.Context, in *ListAssessmentsRequest, opts ...grpclib.CallOption) (*ListAssessmentsResponse, error)
}

type riskServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewRiskServiceClient creates a client that speaks the json codec.
func NewRiskServiceClient(cc grpclib.ClientConnInterface) RiskServiceClient {
	return &riskServiceClient{cc: cc}
}

func (c *riskServiceClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpclib.CallOption) error {
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(codecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *riskServiceClient) AnalyzeLogin(ctx context.Context, in *AnalyzeLoginRequest, opts ...grpclib.CallOption) (*AnalyzeLoginResponse, error) {
	out := new(AnalyzeLoginResponse)
	if err := c.invoke(ctx, MethodAnalyzeLogin, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *riskServiceClient) AnalyzePayload(ctx context.Context, in *AnalyzePayloadRequest, opts ...grpclib.CallOption) (*AnalyzePayloadResponse, error) {
	out := new(AnalyzePayloadResponse)
	if err := c.invoke(ctx, MethodAnalyzePayload, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *riskServiceClient) GetAssessment(ctx context.Context, in *GetAssessmentRequest, opts ...grpclib.CallOption) (*Assessment, error) {
	out := new(Assessment)
	if err := c.invoke(ctx, MethodGetAssessment, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *riskServiceClient) ListAssessments(ctx context.Context, in *ListAssessmentsRequest, opts ...grpclib.CallOption) (*ListAssessmentsResponse, error) {
	out := new(ListAssessmentsResponse)
	if err := c.invoke(ctx, MethodListAssessments, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// Message types.

// AnalyzeLoginRequest carries one login attempt.
type AnalyzeLoginRequest struct {
	Username       string `json:"username"`
	Country        string `json:"country"`
	LoginTime      string `json:"login_time"`
	IPAddress      string `json:"ip_address"`
	Device         string `json:"device"`
	FailedAttempts int32  `json:"failed_attempts"`
}

// AnalyzeLoginResponse is the login verdict.
type AnalyzeLoginResponse struct {
	AssessmentID    string   `json:"assessment_id"`
	RiskLevel       string   `json:"risk_level"`
	Reason          string   `json:"reason"`
	Decision        string   `json:"decision"`
	ResolvedCountry string   `json:"resolved_country,omitempty"`
	AssessedAt      string   `json:"assessed_at"`
	Signals         []string `json:"signals"`
	Recommendations []string `json:"recommendations"`
	AnomalyScore    int32    `json:"anomaly_score"`
}

// AnalyzePayloadRequest carries one payload to classify.
type AnalyzePayloadRequest struct {
	Payload string `json:"payload"`
}

// AnalyzePayloadResponse is the payload verdict.
type AnalyzePayloadResponse struct {
	AssessmentID    string   `json:"assessment_id"`
	AttackType      string   `json:"attack_type"`
	OWASPCategory   string   `json:"owasp_category"`
	Decision        string   `json:"decision"`
	AssessedAt      string   `json:"assessed_at"`
	Signals         []string `json:"signals"`
	Recommendations []string `json:"recommendations"`
	Confidence      float64  `json:"confidence"`
	RiskScore       int32    `json:"risk_score"`
}

// GetAssessmentRequest identifies a stored assessment.
type GetAssessmentRequest struct {
	ID string `json:"id"`
}

// ListAssessmentsRequest pages through stored assessments.
type ListAssessmentsRequest struct {
	Kind   string `json:"kind"`
	Limit  int32  `json:"limit"`
	Offset int32  `json:"offset"`
}

// Assessment is a stored assessment.
type Assessment struct {
	ID              string   `json:"id"`
	Kind            string   `json:"kind"`
	Subject         string   `json:"subject"`
	Source          string   `json:"source,omitempty"`
	RiskLevel       string   `json:"risk_level"`
	AttackType      string   `json:"attack_type,omitempty"`
	OWASPCategory   string   `json:"owasp_category,omitempty"`
	Decision        string   `json:"decision"`
	Confidence      string   `json:"confidence"`
	Explanation     string   `json:"explanation,omitempty"`
	AssessedAt      string   `json:"assessed_at"`
	Signals         []string `json:"signals"`
	Recommendations []string `json:"recommendations"`
	Score           int32    `json:"score"`
	RawScore        int32    `json:"raw_score"`
}

// ListAssessmentsResponse is one page of assessments.
type ListAssessmentsResponse struct {
	Assessments []*Assessment `json:"assessments"`
	Limit       int32         `json:"limit"`
	Offset      int32         `json:"offset"`
}
