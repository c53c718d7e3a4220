package prompts

import "fmt"

// ============================================================================
// JD Extraction Prompt
// ============================================================================

// JDPrompt instructs the model to extract structured fields from a job
// description. The %s placeholder receives the raw JD text.
const JDPrompt = `You are a senior HR specialist. Extract **structured, factual** details from this Job Description.

Job Description:
%s

Return clean JSON:
{
  "Position": "",
  "Experience_Required_Years": "",
  "Must_Have_Skills": [],
  "Nice_To_Have_Skills": [],
  "Education": "",
  "Responsibilities": [],
  "Soft_Skills": [],
  "Location": "",
  "Industry": ""
}
`

// ============================================================================
// Resume Extraction Prompt
// ============================================================================

// ResumePrompt instructs the model to parse a resume into structured fields.
// Career_History ordering matters downstream: the stability scorer reads
// seniority from the final entry of the list as extracted.
const ResumePrompt = `You are a professional recruiter. Parse and extract **key structured details** from this resume.

Resume Text:
%s

Return clean JSON:
{
  "Name": "",
  "Email": "",
  "Mobile": "",
  "Total_Experience_Years": "",
  "Technical_Skills": [],
  "Soft_Skills": [],
  "Education": "",
  "Projects": [],
  "Certifications": [],
  "Domain_Experience": "",
  "Current_Location": "",
  "Career_History": [
      {
        "Company": "",
        "Job_Title": "",
        "Start_Date": "",
        "End_Date": ""
      }
  ]
}

**IMPORTANT:**
- Career_History MUST be ordered chronologically with the **MOST RECENT position FIRST** (reverse chronological order).
- The first entry in Career_History should be the candidate's current/latest job.
- For current positions, use "Present" or "Current" for End_Date if not specified.
`

// ============================================================================
// Comparator Prompt
// ============================================================================

// ComparatorPrompt evaluates an extracted resume against an extracted JD with
// a weighted rubric. The two %s placeholders receive the extracted JD JSON and
// the extracted resume JSON, in that order.
//
// Rubric weights:
//
//	Technical Skills        0.30
//	Experience Relevance    0.20
//	Project/Domain          0.15
//	Education/Certs         0.10
//	Soft Skills             0.05
//	Location/Availability   0.05
//	Stability               0.05
//	Overqualified           0.10
//
// Risk penalties and growth bonuses apply after the weighted base score.
const ComparatorPrompt = `You are an experienced recruiter evaluating a candidate for hiring.

Compare the Job Description and Resume below with **human-level HR reasoning**.

---
Job Description:
%s

Resume:
%s
---

Evaluate using 3 recruiter mind layers:

### 1. FIT & COMPETENCE (Can they do the job?)
Calculate individual scores (0-100) for each parameter, then compute total_score using the weighted formula below.

- Technical Skills Score (0-100) - Match between required and candidate skills
- Experience Relevance Score (0-100) - How well experience aligns with requirements
- Project/Domain Alignment Score (0-100) - Relevance of projects and domain expertise
- Education & Certifications Score (0-100) - Match of education and certifications
- Soft Skills Score (0-100) - Alignment of soft skills with job requirements
- Location / Availability Score (0-100) - Location match and availability
- Stability Score (0-100) - **IMPORTANT:** If candidate has NO professional experience (no Career_History entries or empty Career_History), Stability Score MUST be 0. For candidates with experience: Lower score for frequent job changes, higher for stable career (longer tenure, fewer gaps).
- Overqualified Score (0-100) - Calculate based on: i) extra relevant experience beyond requirements, or ii) equal/more relevant experience with highly valuable additional skills. If candidate doesn't meet either criteria, score should be 0.

**Total Score Formula (calculate after individual scores):**
total_score = (Technical_Skills_Score × 0.30) + (Experience_Relevance_Score × 0.20) + (Project_Domain_Alignment_Score × 0.15) + (Education_Certifications_Score × 0.10) + (Soft_Skills_Score × 0.05) + (Location_Availability_Score × 0.05) + (Stability_Score × 0.05) + (Overqualified_Score × 0.10)

Note: Apply risk penalties and growth bonuses AFTER calculating base total_score.

### 2. RISK & RELIABILITY (Should I trust this hire?)
Look for potential risks:
- Frequent job changes
- Skill exaggeration
- Career inconsistency
- Overqualification or underqualification
- Culture or communication mismatch
- Availability or relocation risk

Each risk reduces 2-10 points.

### 3. GROWTH & VALUE (Will this person grow?)
Add bonus points (+2 to +10) for:
- Continuous learning
- Leadership / mentoring
- Cross-domain knowledge
- Problem-solving & adaptability
- Cultural alignment or passion

---

**Return structured JSON only**:

{
  "fit_category": "Best Fit / Partial Fit / Not Fit",
  "total_score": <calculated number 0-100 using the weighted formula above>,
  "parameter_breakdown": {
    "Skill_Score": "",
    "Experience_Score": "",
    "Project_Score": "",
    "Education_Score": "",
    "Soft_Skill_Score": "",
    "Location_Score": "",
    "Stability_Score": "",
    "Overqualified_Score": ""
  },
  "risk_factors": ["..."],
  "growth_signals": ["..."],
  "recruiter_confidence": "High / Medium / Low",
  "selection_reason": "Detailed recruiter-style explanation combining skill match, risk, and growth reasoning."
}
Be consistent, balanced, and think like a human recruiter minimizing hiring risk.
`

// BuildJDPrompt fills the JD extraction template with raw JD text.
func BuildJDPrompt(jdText string) string {
	return fmt.Sprintf(JDPrompt, jdText)
}

// BuildResumePrompt fills the resume extraction template with raw resume text.
func BuildResumePrompt(resumeText string) string {
	return fmt.Sprintf(ResumePrompt, resumeText)
}

// BuildComparatorPrompt fills the comparator template with the two extracted
// JSON documents.
func BuildComparatorPrompt(jdExtracted, resumeExtracted string) string {
	return fmt.Sprintf(ComparatorPrompt, jdExtracted, resumeExtracted)
}
