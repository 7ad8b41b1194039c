package resume

// resumeSchema constrains only the shape of a reply; no field is required.
const resumeSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "definitions": {
    "text": {"type": ["string", "null"]}
  },
  "properties": {
    "name": {"$ref": "#/definitions/text"},
    "title": {"$ref": "#/definitions/text"},
    "contact": {"$ref": "#/definitions/text"},
    "summary": {"$ref": "#/definitions/text"},
    "skills": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "category": {"$ref": "#/definitions/text"},
          "items": {"$ref": "#/definitions/text"}
        }
      }
    },
    "experience": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "job_title": {"$ref": "#/definitions/text"},
          "company": {"$ref": "#/definitions/text"},
          "context": {"$ref": "#/definitions/text"},
          "dates": {"$ref": "#/definitions/text"},
          "location": {"$ref": "#/definitions/text"},
          "bullets": {
            "type": ["array", "null"],
            "items": {"type": "string"}
          }
        }
      }
    },
    "education": {
      "type": ["object", "null"],
      "properties": {
        "degree": {"$ref": "#/definitions/text"},
        "school": {"$ref": "#/definitions/text"},
        "dates": {"$ref": "#/definitions/text"},
        "location": {"$ref": "#/definitions/text"}
      }
    }
  }
}`

const answersSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "question": {"type": ["string", "null"]},
      "answer": {"type": ["string", "null"]}
    }
  }
}`

// SchemaExample is the literal shape embedded in the tailoring prompt.
const SchemaExample = `{
  "name": "Candidate Name",
  "title": "Tailored Job Title",
  "contact": "Location | email",
  "summary": "The full summary paragraph",
  "skills": [
    {"category": "Category Name", "items": "skill1, skill2, skill3"}
  ],
  "experience": [
    {
      "job_title": "Title",
      "company": "Company Name",
      "context": "Domain context tag",
      "dates": "MM/YYYY - MM/YYYY",
      "location": "City, ST or Remote",
      "bullets": ["bullet 1", "bullet 2"]
    }
  ],
  "education": {
    "degree": "Degree Name",
    "school": "School Name",
    "dates": "MM/YYYY - MM/YYYY",
    "location": "City, ST"
  }
}`
